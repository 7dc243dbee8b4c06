package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/victor-romero-martinez/api-agendapp/internal/auth"
	"github.com/victor-romero-martinez/api-agendapp/internal/database"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerification(ctx context.Context, email, link string) error {
	args := m.Called(ctx, email, link)
	return args.Error(0)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	args := m.Called(ctx, text)
	tasks, _ := args.Get(0).([]GeneratedTask)
	return tasks, args.Error(1)
}

type serviceTestEnv struct {
	ctx        context.Context
	db         *gorm.DB
	store      repository.Store
	hasher     auth.PasswordHasher
	tokens     *auth.TokenIssuer
	mailer     *mockMailer
	users      *UserService
	dashboards *DashboardService
	tasks      *TaskService
	teams      *TeamService
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))

	tokens, err := auth.NewTokenIssuer("service-test-secret", time.Hour)
	require.NoError(t, err)

	mailer := &mockMailer{}
	mailer.On("SendVerification", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	store := repository.NewStore(db)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	return &serviceTestEnv{
		ctx:    context.Background(),
		db:     db,
		store:  store,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		users: NewUserService(store, hasher, tokens, mailer, UserServiceOptions{
			VerifyURL: "http://localhost:8080/api/v1/verify",
		}),
		dashboards: NewDashboardService(store),
		tasks:      NewTaskService(store, nil),
		teams:      NewTeamService(store),
	}
}

// createUser inserts an active user directly, bypassing registration.
func (env *serviceTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	digest, err := env.hasher.Hash("pw1234")
	require.NoError(t, err)

	user := &models.User{Email: email, Password: digest, Role: models.RoleUser, Active: true}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *serviceTestEnv) deactivate(t *testing.T, user *models.User) {
	t.Helper()
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("active", false).Error)
}

func (env *serviceTestEnv) createDashboard(t *testing.T, name string, owner *models.User) *models.Dashboard {
	t.Helper()
	dashboard, err := env.dashboards.Create(env.ctx, name, owner.Email)
	require.NoError(t, err)
	return dashboard
}

func (env *serviceTestEnv) createTask(t *testing.T, title string, author *models.User, dashboard *models.Dashboard) *models.Task {
	t.Helper()
	task, err := env.tasks.Create(env.ctx, CreateTaskInput{Title: title, DashboardID: dashboard.ID}, author.Email)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
