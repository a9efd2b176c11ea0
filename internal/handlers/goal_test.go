package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalboard/goalboard-api/internal/constants"
	"github.com/goalboard/goalboard-api/internal/database"
	"github.com/goalboard/goalboard-api/internal/dto"
	"github.com/goalboard/goalboard-api/internal/models"
	"github.com/goalboard/goalboard-api/internal/repository"
	"github.com/goalboard/goalboard-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GoalHandlerTestSuite defines the test suite for GoalHandler
type GoalHandlerTestSuite struct {
	suite.Suite
	db              *gorm.DB
	handler         *GoalHandler
	categoryHandler *CategoryHandler

	owner    *models.User
	reader   *models.User
	board    *models.Board
	category *models.GoalCategory
}

// SetupTest runs before each test
func (suite *GoalHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardParticipant{},
		&models.GoalCategory{},
		&models.Goal{},
		&models.GoalComment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	boardRepo := repository.NewBoardRepository(suite.db)
	categoryRepo := repository.NewCategoryRepository(suite.db)
	goalRepo := repository.NewGoalRepository(suite.db)

	suite.handler = NewGoalHandler(services.NewGoalService(goalRepo, categoryRepo, boardRepo))
	suite.categoryHandler = NewCategoryHandler(services.NewCategoryService(categoryRepo, boardRepo))

	gin.SetMode(gin.TestMode)

	suite.owner = suite.createUser("owner")
	suite.reader = suite.createUser("reader")

	suite.board = &models.Board{Title: "Work"}
	suite.Require().NoError(suite.db.Create(suite.board).Error)
	suite.Require().NoError(suite.db.Create(&models.BoardParticipant{
		BoardID: suite.board.ID,
		UserID:  suite.owner.ID,
		Role:    models.RoleOwner,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.BoardParticipant{
		BoardID: suite.board.ID,
		UserID:  suite.reader.ID,
		Role:    models.RoleReader,
	}).Error)

	suite.category = &models.GoalCategory{
		Title:   "Tasks",
		BoardID: suite.board.ID,
		UserID:  suite.owner.ID,
	}
	suite.Require().NoError(suite.db.Create(suite.category).Error)
}

// TearDownTest runs after each test
func (suite *GoalHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *GoalHandlerTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *GoalHandlerTestSuite) createGoal(title string, priority models.GoalPriority, dueDate *time.Time) *models.Goal {
	goal := &models.Goal{
		Title:      title,
		CategoryID: suite.category.ID,
		UserID:     suite.owner.ID,
		Status:     models.GoalStatusInProgress,
		Priority:   priority,
		DueDate:    dueDate,
	}
	suite.Require().NoError(suite.db.Create(goal).Error)
	return goal
}

func (suite *GoalHandlerTestSuite) authContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *GoalHandlerTestSuite) TestCreateGoal() {
	body, _ := json.Marshal(map[string]interface{}{
		"category": suite.category.ID,
		"title":    "Write report",
		"priority": 3,
	})
	c, w := suite.authContext("POST", "/api/goals", body, suite.owner.ID)

	suite.handler.CreateGoal(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.GoalDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Write report", response.Title)
	assert.Equal(suite.T(), models.GoalStatusInProgress, response.Status)
	assert.Equal(suite.T(), models.PriorityHigh, response.Priority)
}

func (suite *GoalHandlerTestSuite) TestCreateGoal_ReaderForbidden() {
	body, _ := json.Marshal(map[string]interface{}{
		"category": suite.category.ID,
		"title":    "Write report",
	})
	c, w := suite.authContext("POST", "/api/goals", body, suite.reader.ID)

	suite.handler.CreateGoal(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *GoalHandlerTestSuite) TestCreateGoal_ArchivedRejected() {
	body, _ := json.Marshal(map[string]interface{}{
		"category": suite.category.ID,
		"title":    "Write report",
		"status":   "archived",
	})
	c, w := suite.authContext("POST", "/api/goals", body, suite.owner.ID)

	suite.handler.CreateGoal(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *GoalHandlerTestSuite) TestDeleteGoal_ArchivesAndStaysIdempotent() {
	goal := suite.createGoal("Write report", models.PriorityMedium, nil)

	c, w := suite.authContext("DELETE", "/api/goals/1", nil, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(goal.ID)}}
	suite.handler.DeleteGoal(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var goalRow models.Goal
	suite.Require().NoError(suite.db.First(&goalRow, goal.ID).Error)
	assert.Equal(suite.T(), models.GoalStatusArchived, goalRow.Status)

	// Second delete succeeds without touching the row again
	c, w = suite.authContext("DELETE", "/api/goals/1", nil, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(goal.ID)}}
	suite.handler.DeleteGoal(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	suite.Require().NoError(suite.db.First(&goalRow, goal.ID).Error)
	assert.Equal(suite.T(), models.GoalStatusArchived, goalRow.Status)
}

func (suite *GoalHandlerTestSuite) TestGetGoal_ArchivedStillVisible() {
	goal := suite.createGoal("Write report", models.PriorityMedium, nil)
	suite.Require().NoError(suite.db.Model(goal).Update("status", models.GoalStatusArchived).Error)

	c, w := suite.authContext("GET", "/api/goals/1", nil, suite.reader.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(goal.ID)}}

	suite.handler.GetGoal(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.GoalDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.GoalStatusArchived, response.Status)
}

// Deleting a category hides its goals without archiving them.
func (suite *GoalHandlerTestSuite) TestCategoryDelete_HidesButDoesNotArchiveGoals() {
	goal := suite.createGoal("Write report", models.PriorityMedium, nil)

	c, w := suite.authContext("DELETE", "/api/goal_categories/1", nil, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(suite.category.ID)}}
	suite.categoryHandler.DeleteCategory(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var goalRow models.Goal
	suite.Require().NoError(suite.db.First(&goalRow, goal.ID).Error)
	assert.Equal(suite.T(), models.GoalStatusInProgress, goalRow.Status)

	c, w = suite.authContext("GET", "/api/goals/1", nil, suite.owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(goal.ID)}}
	suite.handler.GetGoal(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *GoalHandlerTestSuite) TestListGoals_PriorityFilter() {
	suite.createGoal("Low", models.PriorityLow, nil)
	suite.createGoal("Critical", models.PriorityCritical, nil)

	c, w := suite.authContext("GET", "/api/goals?priority=4", nil, suite.owner.ID)

	suite.handler.ListGoals(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Goals []dto.GoalDTO `json:"goals"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Goals, 1)
	assert.Equal(suite.T(), "Critical", response.Goals[0].Title)
}

func (suite *GoalHandlerTestSuite) TestListGoals_DueDateRange() {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.createGoal("January", models.PriorityMedium, &jan)
	suite.createGoal("Deadline", models.PriorityMedium, &lastDay)
	suite.createGoal("March", models.PriorityMedium, &mar)
	suite.createGoal("Undated", models.PriorityMedium, nil)

	c, w := suite.authContext("GET", "/api/goals?due_date_from=2024-01-01&due_date_to=2024-01-31", nil, suite.owner.ID)

	suite.handler.ListGoals(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Goals []dto.GoalDTO `json:"goals"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Goals, 2)
	// A goal due exactly on due_date_to is inside the range
	assert.Equal(suite.T(), "January", response.Goals[0].Title)
	assert.Equal(suite.T(), "Deadline", response.Goals[1].Title)
}

func (suite *GoalHandlerTestSuite) TestListGoals_DueDateRangeSingleDay() {
	lastDay := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.createGoal("Deadline", models.PriorityMedium, &lastDay)

	c, w := suite.authContext("GET", "/api/goals?due_date_from=2024-01-31&due_date_to=2024-01-31", nil, suite.owner.ID)

	suite.handler.ListGoals(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Goals []dto.GoalDTO `json:"goals"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Goals, 1)
	assert.Equal(suite.T(), "Deadline", response.Goals[0].Title)
}

func (suite *GoalHandlerTestSuite) TestListGoals_InvalidStatusFilter() {
	c, w := suite.authContext("GET", "/api/goals?status=bogus", nil, suite.owner.ID)

	suite.handler.ListGoals(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *GoalHandlerTestSuite) TestListGoals_DueDateOrdering() {
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	early := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.createGoal("Later", models.PriorityLow, &late)
	suite.createGoal("Sooner", models.PriorityLow, &early)

	c, w := suite.authContext("GET", "/api/goals?ordering=due_date", nil, suite.owner.ID)

	suite.handler.ListGoals(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Goals []dto.GoalDTO `json:"goals"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Goals, 2)
	assert.Equal(suite.T(), "Sooner", response.Goals[0].Title)
	assert.Equal(suite.T(), "Later", response.Goals[1].Title)
}

func TestGoalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GoalHandlerTestSuite))
}
