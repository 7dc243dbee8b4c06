package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/victor-romero-martinez/api-agendapp/internal/database"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type StoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store Store
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(database.Models()...))

	suite.store = NewStore(suite.db)
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *StoreTestSuite) createUser(email string) *models.User {
	user := &models.User{Email: email, Password: "digest"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *StoreTestSuite) createDashboard(name string, ownerID uint64) *models.Dashboard {
	dashboard := &models.Dashboard{Name: name, OwnerID: ownerID}
	suite.Require().NoError(suite.db.Create(dashboard).Error)
	return dashboard
}

func (suite *StoreTestSuite) createTask(title string, authorID, dashboardID uint64) *models.Task {
	task := &models.Task{Title: title, Priority: 1, Status: models.TaskStatusPending, AuthorID: authorID, DashboardID: dashboardID}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *StoreTestSuite) TestOwnerOf() {
	owner := suite.createUser("owner@x.com")
	dashboard := suite.createDashboard("Board", owner.ID)

	got, err := suite.store.OwnerOf(suite.ctx, DashboardOwner, dashboard.ID)
	suite.Require().NoError(err)
	suite.Equal(owner.ID, got)

	_, err = suite.store.OwnerOf(suite.ctx, DashboardOwner, 999)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *StoreTestSuite) TestOwnerOf_AllOwnedEntities() {
	owner := suite.createUser("owner@x.com")
	dashboard := suite.createDashboard("Board", owner.ID)
	task := suite.createTask("Write tests", owner.ID, dashboard.ID)
	team := &models.Team{AuthorID: owner.ID, Organization: "Core", Members: datatypes.NewJSONSlice([]uint64{owner.ID})}
	suite.Require().NoError(suite.store.Teams().Create(suite.ctx, team))

	for owned, id := range map[Owned]uint64{
		DashboardOwner: dashboard.ID,
		TaskAuthor:     task.ID,
		TeamAuthor:     team.ID,
	} {
		got, err := suite.store.OwnerOf(suite.ctx, owned, id)
		suite.Require().NoError(err, owned.Table)
		suite.Equal(owner.ID, got, owned.Table)
	}
}

func (suite *StoreTestSuite) TestDeleteOwned() {
	owner := suite.createUser("owner@x.com")
	other := suite.createUser("other@x.com")
	dashboard := suite.createDashboard("Board", owner.ID)
	task := suite.createTask("Write tests", owner.ID, dashboard.ID)

	affected, err := suite.store.DeleteOwned(suite.ctx, TaskAuthor, task.ID, other.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), affected)

	affected, err = suite.store.DeleteOwned(suite.ctx, TaskAuthor, task.ID, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), affected)

	_, err = suite.store.Tasks().FindByID(suite.ctx, task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *StoreTestSuite) TestTransaction_RollsBackOnError() {
	owner := suite.createUser("owner@x.com")
	dashboard := suite.createDashboard("Board", owner.ID)
	boom := errors.New("boom")

	err := suite.store.Transaction(suite.ctx, func(tx Store) error {
		if err := tx.Dashboards().Rename(suite.ctx, dashboard.ID, "Renamed"); err != nil {
			return err
		}
		return boom
	})
	suite.ErrorIs(err, boom)

	reloaded, err := suite.store.Dashboards().FindByID(suite.ctx, dashboard.ID)
	suite.Require().NoError(err)
	suite.Equal("Board", reloaded.Name)
}

func (suite *StoreTestSuite) TestDashboardDelete_RemovesTasks() {
	owner := suite.createUser("owner@x.com")
	dashboard := suite.createDashboard("Board", owner.ID)
	suite.createTask("One", owner.ID, dashboard.ID)
	suite.createTask("Two", owner.ID, dashboard.ID)

	suite.Require().NoError(suite.store.Dashboards().Delete(suite.ctx, dashboard.ID))

	var count int64
	suite.db.Model(&models.Task{}).Where("dashboard_id = ?", dashboard.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *StoreTestSuite) TestTeamMembers_RoundTrip() {
	owner := suite.createUser("owner@x.com")
	team := &models.Team{AuthorID: owner.ID, Organization: "Core", Members: datatypes.NewJSONSlice([]uint64{3, 1, 2})}
	suite.Require().NoError(suite.store.Teams().Create(suite.ctx, team))

	suite.Require().NoError(suite.store.Teams().SetMembers(suite.ctx, team.ID, []uint64{2, 5}))

	reloaded, err := suite.store.Teams().FindByID(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Equal([]uint64{2, 5}, reloaded.MemberIDs())

	suite.Require().NoError(suite.store.Teams().SetMembers(suite.ctx, team.ID, nil))
	reloaded, err = suite.store.Teams().FindByID(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Empty(reloaded.MemberIDs())
}

func (suite *StoreTestSuite) TestUserList_ProjectsWithoutPassword() {
	suite.createUser("a@x.com")
	suite.createUser("b@x.com")
	suite.createUser("c@x.com")

	users, total, err := suite.store.Users().List(suite.ctx, utils.NewPaginationParams(1, 2))
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(users, 2)
	suite.Equal("a@x.com", users[0].Email)
	suite.Empty(users[0].Password)
}

func (suite *StoreTestSuite) TestCountActiveByIDs() {
	a := suite.createUser("a@x.com")
	b := suite.createUser("b@x.com")
	suite.Require().NoError(suite.store.Users().Update(suite.ctx, b.ID, map[string]interface{}{"active": false}))

	count, err := suite.store.Users().CountActiveByIDs(suite.ctx, []uint64{a.ID, b.ID, 42})
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.store.Users().CountActiveByIDs(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *StoreTestSuite) TestTaskList_Filters() {
	owner := suite.createUser("owner@x.com")
	other := suite.createUser("other@x.com")
	board := suite.createDashboard("Board", owner.ID)
	otherBoard := suite.createDashboard("Other", other.ID)
	suite.createTask("Mine one", owner.ID, board.ID)
	suite.createTask("Mine two", owner.ID, board.ID)
	suite.createTask("Theirs", other.ID, otherBoard.ID)

	tasks, total, err := suite.store.Tasks().List(suite.ctx, TaskFilter{AuthorID: &owner.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(tasks, 2)

	tasks, total, err = suite.store.Tasks().List(suite.ctx, TaskFilter{Page: 1, PageSize: 1})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(tasks, 1)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestOwnedTables(t *testing.T) {
	require.Equal(t, "owner_id", DashboardOwner.OwnerColumn)
	assert.Equal(t, "author_id", TaskAuthor.OwnerColumn)
	assert.Equal(t, "author_id", TeamAuthor.OwnerColumn)
}
