package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
)

func TestDashboard_CreateAndList(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")
	bob := env.createUser(t, "bob@x.com")

	created, err := env.dashboards.Create(env.ctx, "  Sprint 1 ", alice.Email)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", created.Name)
	assert.Equal(t, alice.ID, created.OwnerID)
	assert.False(t, created.CreatedAt.IsZero())

	env.createDashboard(t, "Bob board", bob)

	dashboards, err := env.dashboards.ListByOwner(env.ctx, alice.Email)
	require.NoError(t, err)
	require.Len(t, dashboards, 1)
	assert.Equal(t, created.ID, dashboards[0].ID)

	_, err = env.dashboards.ListByOwner(env.ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDashboard_CreateValidation(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")

	_, err := env.dashboards.Create(env.ctx, "   ", alice.Email)
	assert.ErrorIs(t, err, ErrDashboardNameLength)

	_, err = env.dashboards.Create(env.ctx, strings.Repeat("x", 61), alice.Email)
	assert.ErrorIs(t, err, ErrDashboardNameLength)

	_, err = env.dashboards.Create(env.ctx, "Board", "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDashboard_UpdateByOwner(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")
	dashboard := env.createDashboard(t, "Board", alice)

	updated, err := env.dashboards.Update(env.ctx, UpdateDashboardInput{ID: dashboard.ID, Name: "Renamed"}, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(dashboard.UpdatedAt))
}

func TestDashboard_NonOwnerCannotMutate(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")
	bob := env.createUser(t, "bob@x.com")
	dashboard := env.createDashboard(t, "Board", alice)

	_, err := env.dashboards.Update(env.ctx, UpdateDashboardInput{ID: dashboard.ID, Name: "Hijacked"}, bob.Email)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.dashboards.Delete(env.ctx, dashboard.ID, bob.Email)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var stored models.Dashboard
	require.NoError(t, env.db.First(&stored, dashboard.ID).Error)
	assert.Equal(t, "Board", stored.Name)
}

func TestDashboard_MissingDashboard(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")

	_, err := env.dashboards.Update(env.ctx, UpdateDashboardInput{ID: 42, Name: "Nope"}, alice.Email)
	assert.ErrorIs(t, err, ErrDashboardNotFound)

	_, err = env.dashboards.Delete(env.ctx, 42, alice.Email)
	assert.ErrorIs(t, err, ErrDashboardNotFound)
}

func TestDashboard_DeleteRemovesTasks(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.createUser(t, "alice@x.com")
	dashboard := env.createDashboard(t, "Board", alice)
	env.createTask(t, "First task", alice, dashboard)
	env.createTask(t, "Second task", alice, dashboard)

	message, err := env.dashboards.Delete(env.ctx, dashboard.ID, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, "Deleted successfully dashboard 1.", message)

	var tasks int64
	env.db.Model(&models.Task{}).Count(&tasks)
	assert.Zero(t, tasks)

	// deleting again reports the same not-found outcome
	_, err = env.dashboards.Delete(env.ctx, dashboard.ID, alice.Email)
	assert.ErrorIs(t, err, ErrDashboardNotFound)
}
