package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

// BoardHandlerTestSuite defines the test suite for BoardHandler
type BoardHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handler     *BoardHandler
	goalHandler *GoalHandler
}

// SetupTest runs before each test
func (suite *BoardHandlerTestSuite) SetupTest() {
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

	userRepo := repository.NewUserRepository(suite.db)
	boardRepo := repository.NewBoardRepository(suite.db)
	categoryRepo := repository.NewCategoryRepository(suite.db)
	goalRepo := repository.NewGoalRepository(suite.db)

	suite.handler = NewBoardHandler(services.NewBoardService(boardRepo, userRepo))
	suite.goalHandler = NewGoalHandler(services.NewGoalService(goalRepo, categoryRepo, boardRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BoardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BoardHandlerTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *BoardHandlerTestSuite) createBoard(title string, ownerID uint64) *models.Board {
	board := &models.Board{Title: title}
	suite.Require().NoError(suite.db.Create(board).Error)
	suite.Require().NoError(suite.db.Create(&models.BoardParticipant{
		BoardID: board.ID,
		UserID:  ownerID,
		Role:    models.RoleOwner,
	}).Error)
	return board
}

func (suite *BoardHandlerTestSuite) addParticipant(boardID, userID uint64, role models.ParticipantRole) {
	suite.Require().NoError(suite.db.Create(&models.BoardParticipant{
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
	}).Error)
}

func (suite *BoardHandlerTestSuite) createCategory(title string, boardID, userID uint64) *models.GoalCategory {
	category := &models.GoalCategory{Title: title, BoardID: boardID, UserID: userID}
	suite.Require().NoError(suite.db.Create(category).Error)
	return category
}

func (suite *BoardHandlerTestSuite) createGoal(title string, categoryID, userID uint64) *models.Goal {
	goal := &models.Goal{
		Title:      title,
		CategoryID: categoryID,
		UserID:     userID,
		Status:     models.GoalStatusInProgress,
		Priority:   models.PriorityLow,
	}
	suite.Require().NoError(suite.db.Create(goal).Error)
	return goal
}

func (suite *BoardHandlerTestSuite) authContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *BoardHandlerTestSuite) TestCreateBoard() {
	user := suite.createUser("owner")

	body, _ := json.Marshal(map[string]string{"title": "Work"})
	c, w := suite.authContext("POST", "/api/boards", body, user.ID)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.BoardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Work", response.Title)

	// Creator must be the sole owner participant
	var participants []models.BoardParticipant
	suite.Require().NoError(suite.db.Where("board_id = ?", response.ID).Find(&participants).Error)
	suite.Require().Len(participants, 1)
	assert.Equal(suite.T(), user.ID, participants[0].UserID)
	assert.Equal(suite.T(), models.RoleOwner, participants[0].Role)
}

func (suite *BoardHandlerTestSuite) TestListBoards_OrderedByTitle() {
	user := suite.createUser("owner")
	suite.createBoard("Zeta", user.ID)
	suite.createBoard("Alpha", user.ID)

	// Boards of other users never show up
	other := suite.createUser("other")
	suite.createBoard("Hidden", other.ID)

	c, w := suite.authContext("GET", "/api/boards", nil, user.ID)

	suite.handler.ListBoards(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Boards []dto.BoardDTO `json:"boards"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Boards, 2)
	assert.Equal(suite.T(), "Alpha", response.Boards[0].Title)
	assert.Equal(suite.T(), "Zeta", response.Boards[1].Title)
}

func (suite *BoardHandlerTestSuite) TestGetBoard_NonParticipantNotFound() {
	owner := suite.createUser("owner")
	stranger := suite.createUser("stranger")
	board := suite.createBoard("Work", owner.ID)

	c, w := suite.authContext("GET", "/api/boards/1", nil, stranger.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.GetBoard(c)

	// Not 403: existence must not leak
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *BoardHandlerTestSuite) TestUpdateBoard_NonOwnerForbidden() {
	owner := suite.createUser("owner")
	writer := suite.createUser("writer")
	board := suite.createBoard("Work", owner.ID)
	suite.addParticipant(board.ID, writer.ID, models.RoleWriter)

	body, _ := json.Marshal(map[string]string{"title": "Renamed"})
	c, w := suite.authContext("PUT", "/api/boards/1", body, writer.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *BoardHandlerTestSuite) TestUpdateBoard_ReplacesRoster() {
	owner := suite.createUser("owner")
	old := suite.createUser("old-member")
	next := suite.createUser("new-member")
	board := suite.createBoard("Work", owner.ID)
	suite.addParticipant(board.ID, old.ID, models.RoleWriter)

	body, _ := json.Marshal(map[string]interface{}{
		"participants": []map[string]interface{}{
			{"user_id": next.ID, "role": "reader"},
		},
	})
	c, w := suite.authContext("PUT", "/api/boards/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var participants []models.BoardParticipant
	suite.Require().NoError(suite.db.Where("board_id = ?", board.ID).Order("role").Find(&participants).Error)
	suite.Require().Len(participants, 2)

	roles := map[uint64]models.ParticipantRole{}
	for _, p := range participants {
		roles[p.UserID] = p.Role
	}
	assert.Equal(suite.T(), models.RoleOwner, roles[owner.ID])
	assert.Equal(suite.T(), models.RoleReader, roles[next.ID])
	assert.NotContains(suite.T(), roles, old.ID)
}

func (suite *BoardHandlerTestSuite) TestUpdateBoard_RejectedRosterLeavesTitleUntouched() {
	owner := suite.createUser("owner")
	stranger := suite.createUser("stranger")
	board := suite.createBoard("Work", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Renamed",
		"participants": []map[string]interface{}{
			{"user_id": stranger.ID, "role": "reader"},
			{"user_id": stranger.ID, "role": "writer"},
		},
	})
	c, w := suite.authContext("PUT", "/api/boards/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// No partial application: the title write waits for roster validation
	var boardRow models.Board
	suite.Require().NoError(suite.db.First(&boardRow, board.ID).Error)
	assert.Equal(suite.T(), "Work", boardRow.Title)
}

func (suite *BoardHandlerTestSuite) TestUpdateBoard_OwnerCannotBeDemoted() {
	owner := suite.createUser("owner")
	board := suite.createBoard("Work", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"participants": []map[string]interface{}{
			{"user_id": owner.ID, "role": "reader"},
		},
	})
	c, w := suite.authContext("PUT", "/api/boards/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Owner row untouched
	var participant models.BoardParticipant
	suite.Require().NoError(suite.db.Where("board_id = ? AND user_id = ?", board.ID, owner.ID).First(&participant).Error)
	assert.Equal(suite.T(), models.RoleOwner, participant.Role)
}

func (suite *BoardHandlerTestSuite) TestDeleteBoard_NonOwnerForbidden() {
	owner := suite.createUser("owner")
	writer := suite.createUser("writer")
	board := suite.createBoard("Work", owner.ID)
	suite.addParticipant(board.ID, writer.ID, models.RoleWriter)

	c, w := suite.authContext("DELETE", "/api/boards/1", nil, writer.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var board2 models.Board
	suite.Require().NoError(suite.db.First(&board2, board.ID).Error)
	assert.False(suite.T(), board2.IsDeleted)
}

// Deleting a board flags it and its categories and archives every goal
// underneath, while a non-participant never saw the goal to begin with.
func (suite *BoardHandlerTestSuite) TestDeleteBoard_Cascades() {
	userA := suite.createUser("user-a")
	userB := suite.createUser("user-b")

	board := suite.createBoard("Work", userA.ID)
	category := suite.createCategory("Tasks", board.ID, userA.ID)
	goal := suite.createGoal("Write spec", category.ID, userA.ID)

	// User B is no participant: direct retrieve answers not found
	c, w := suite.authContext("GET", "/api/goals/1", nil, userB.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(goal.ID)}}
	suite.goalHandler.GetGoal(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// User A deletes the board
	c, w = suite.authContext("DELETE", "/api/boards/1", nil, userA.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}
	suite.handler.DeleteBoard(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var boardRow models.Board
	suite.Require().NoError(suite.db.First(&boardRow, board.ID).Error)
	assert.True(suite.T(), boardRow.IsDeleted)

	var categoryRow models.GoalCategory
	suite.Require().NoError(suite.db.First(&categoryRow, category.ID).Error)
	assert.True(suite.T(), categoryRow.IsDeleted)

	var goalRow models.Goal
	suite.Require().NoError(suite.db.First(&goalRow, goal.ID).Error)
	assert.Equal(suite.T(), models.GoalStatusArchived, goalRow.Status)

	// The deleted board answers not found even for its owner
	c, w = suite.authContext("GET", "/api/boards/1", nil, userA.ID)
	c.Params = gin.Params{{Key: "id", Value: itoa(board.ID)}}
	suite.handler.GetBoard(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestBoardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}
