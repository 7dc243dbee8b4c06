//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/victor-romero-martinez/api-agendapp/internal/database"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:17.7",
		postgres.WithDatabase("agendapp_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect("postgres", dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestPostgres_MigrateAndOwnership(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	store := repository.NewStore(db)

	// migrating twice is a no-op
	require.NoError(t, database.Migrate(db))
	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_author_created"))

	alice := &models.User{Email: "alice@x.com", Password: "digest", Role: models.RoleUser, Active: true}
	require.NoError(t, store.Users().Create(ctx, alice))
	dashboard := &models.Dashboard{Name: "Board", OwnerID: alice.ID}
	require.NoError(t, store.Dashboards().Create(ctx, dashboard))
	task := &models.Task{Title: "First task", Status: models.TaskStatusPending, Priority: 1, AuthorID: alice.ID, DashboardID: dashboard.ID}
	require.NoError(t, store.Tasks().Create(ctx, task))

	owner, err := store.OwnerOf(ctx, repository.DashboardOwner, dashboard.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner)

	affected, err := store.DeleteOwned(ctx, repository.TaskAuthor, task.ID, alice.ID+1)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = store.DeleteOwned(ctx, repository.TaskAuthor, task.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestPostgres_TeamMembersRoundTrip(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	store := repository.NewStore(db)

	alice := &models.User{Email: "alice@x.com", Password: "digest", Role: models.RoleUser, Active: true}
	require.NoError(t, store.Users().Create(ctx, alice))

	team := &models.Team{AuthorID: alice.ID, Organization: "Acme", Members: datatypes.NewJSONSlice([]uint64{3, 1, 2})}
	require.NoError(t, store.Teams().Create(ctx, team))
	require.NoError(t, store.Teams().SetMembers(ctx, team.ID, []uint64{2, 5}))

	loaded, err := store.Teams().FindByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 5}, loaded.MemberIDs())
}
