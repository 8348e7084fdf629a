package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/xblade/league-api/internal/database"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RosterHandlerTestSuite defines the test suite for RosterHandler
type RosterHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *RosterHandler
}

// SetupTest runs before each test
func (suite *RosterHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.League{},
		&models.Season{},
		&models.Club{},
		&models.Player{},
		&models.SeasonClub{},
		&models.SeasonPlayer{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	seasonRepo := repository.NewSeasonRepository(suite.db)
	clubRepo := repository.NewClubRepository(suite.db)
	playerRepo := repository.NewPlayerRepository(suite.db)
	memberRepo := repository.NewMembershipRepository(suite.db)

	membership := services.NewMembershipService(seasonRepo, clubRepo, playerRepo, memberRepo, nil)
	roster := services.NewRosterService(seasonRepo, clubRepo, playerRepo, memberRepo, nil)
	suite.handler = NewRosterHandler(membership, roster)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *RosterHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RosterHandlerTestSuite) createTestSeason(name string) *models.Season {
	league := &models.League{Name: name + " League", Active: true}
	suite.db.Create(league)
	season := &models.Season{LeagueID: league.ID, Name: name, Active: true}
	suite.db.Create(season)
	return season
}

func (suite *RosterHandlerTestSuite) createTestClub(name string) *models.Club {
	club := &models.Club{Name: name, Active: true}
	suite.db.Create(club)
	return club
}

func (suite *RosterHandlerTestSuite) createTestPlayer(name string) *models.Player {
	player := &models.Player{Name: name, Active: true}
	suite.db.Create(player)
	return player
}

// Helper to build a request context with optional body and path params
func (suite *RosterHandlerTestSuite) createContext(method, url string, body []byte, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Params = params

	return c, w
}

// TestAddClubToSeason_CreatedAndDuplicate tests the 201/200 split between a
// fresh join and a repeated one
func (suite *RosterHandlerTestSuite) TestAddClubToSeason_CreatedAndDuplicate() {
	season := suite.createTestSeason("2024/25")
	club := suite.createTestClub("Eagles")

	body, _ := json.Marshal(map[string]interface{}{
		"season_id": season.ID,
		"club_id":   club.ID,
	})

	c, w := suite.createContext("POST", "/api/v1/admin/season-management/clubs", body)
	suite.handler.AddClubToSeason(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var first map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(suite.T(), true, first["created"])

	c, w = suite.createContext("POST", "/api/v1/admin/season-management/clubs", body)
	suite.handler.AddClubToSeason(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var second map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(suite.T(), false, second["created"])
	assert.Equal(suite.T(), first["membership_id"], second["membership_id"])
}

// TestAddClubToSeason_MissingSeason tests the dependency error mapping
func (suite *RosterHandlerTestSuite) TestAddClubToSeason_MissingSeason() {
	club := suite.createTestClub("Eagles")

	body, _ := json.Marshal(map[string]interface{}{
		"season_id": 9999,
		"club_id":   club.ID,
	})

	c, w := suite.createContext("POST", "/api/v1/admin/season-management/clubs", body)
	suite.handler.AddClubToSeason(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRemoveClubFromSeason_Idempotent tests that a second remove still
// returns 200 and flags the absence
func (suite *RosterHandlerTestSuite) TestRemoveClubFromSeason_Idempotent() {
	season := suite.createTestSeason("2024/25")
	club := suite.createTestClub("Eagles")
	suite.db.Create(&models.SeasonClub{SeasonID: season.ID, ClubID: club.ID, Assigned: true})

	params := []gin.Param{
		{Key: "seasonId", Value: "1"},
		{Key: "clubId", Value: "1"},
	}

	c, w := suite.createContext("DELETE", "/api/v1/admin/season-management/clubs/1/1", nil, params...)
	suite.handler.RemoveClubFromSeason(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var first map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(suite.T(), false, first["already_absent"])

	c, w = suite.createContext("DELETE", "/api/v1/admin/season-management/clubs/1/1", nil, params...)
	suite.handler.RemoveClubFromSeason(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var second map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(suite.T(), true, second["already_absent"])
}

// TestListSeasonClubs_AssignedFilter tests the ?assigned= query filter
func (suite *RosterHandlerTestSuite) TestListSeasonClubs_AssignedFilter() {
	season := suite.createTestSeason("2024/25")
	eagles := suite.createTestClub("Eagles")
	hawks := suite.createTestClub("Hawks")
	suite.db.Create(&models.SeasonClub{SeasonID: season.ID, ClubID: eagles.ID, Assigned: true})
	suite.db.Create(&models.SeasonClub{SeasonID: season.ID, ClubID: hawks.ID, Assigned: false})

	params := []gin.Param{{Key: "seasonId", Value: "1"}}

	c, w := suite.createContext("GET", "/api/v1/admin/season-management/clubs/1", nil, params...)
	c.Request.URL.RawQuery = "assigned=true"
	suite.handler.ListSeasonClubs(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response["clubs"], 1)
	assert.Equal(suite.T(), "Eagles", response["clubs"][0]["name"])
}

// TestUpdateClubAssignment_RequiresExplicitFlag tests that a body without
// the assigned field is rejected rather than defaulted
func (suite *RosterHandlerTestSuite) TestUpdateClubAssignment_RequiresExplicitFlag() {
	season := suite.createTestSeason("2024/25")
	club := suite.createTestClub("Eagles")
	suite.db.Create(&models.SeasonClub{SeasonID: season.ID, ClubID: club.ID, Assigned: true})

	params := []gin.Param{
		{Key: "seasonId", Value: "1"},
		{Key: "clubId", Value: "1"},
	}

	c, w := suite.createContext("PUT", "/api/v1/admin/season-management/clubs/1/1/assignment", []byte(`{}`), params...)
	suite.handler.UpdateClubAssignment(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	body, _ := json.Marshal(map[string]interface{}{"assigned": false})
	c, w = suite.createContext("PUT", "/api/v1/admin/season-management/clubs/1/1/assignment", body, params...)
	suite.handler.UpdateClubAssignment(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), false, response["assigned"])
}

// TestCreatePlayerInSeason tests create-and-add in one call
func (suite *RosterHandlerTestSuite) TestCreatePlayerInSeason() {
	season := suite.createTestSeason("2024/25")

	body, _ := json.Marshal(map[string]interface{}{
		"season_id": season.ID,
		"name":      "Jane",
		"position":  "forward",
	})

	c, w := suite.createContext("POST", "/api/v1/admin/season-management/players/create", body)
	suite.handler.CreatePlayerInSeason(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	player := response["player"].(map[string]interface{})
	assert.Equal(suite.T(), "Jane", player["name"])
	assert.Nil(suite.T(), player["current_club_id"])
	membership := response["membership"].(map[string]interface{})
	assert.Equal(suite.T(), true, membership["created"])
}

// TestUpdatePlayerClub_Sentinel tests clearing the pointer via a sentinel
func (suite *RosterHandlerTestSuite) TestUpdatePlayerClub_Sentinel() {
	club := suite.createTestClub("Eagles")
	player := suite.createTestPlayer("Jane")
	suite.db.Model(&models.Player{}).Where("id = ?", player.ID).Update("current_club_id", club.ID)

	params := []gin.Param{{Key: "playerId", Value: "1"}}

	body, _ := json.Marshal(map[string]interface{}{"current_club": "free-agents"})
	c, w := suite.createContext("PUT", "/api/v1/admin/season-management/roster/players/1/club", body, params...)
	suite.handler.UpdatePlayerClub(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Player
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(suite.T(), response.CurrentClubID)
}

// TestUpdatePlayerClub_UnknownClub tests the dangling reference mapping
func (suite *RosterHandlerTestSuite) TestUpdatePlayerClub_UnknownClub() {
	suite.createTestPlayer("Jane")

	params := []gin.Param{{Key: "playerId", Value: "1"}}

	body, _ := json.Marshal(map[string]interface{}{"current_club": "9999"})
	c, w := suite.createContext("PUT", "/api/v1/admin/season-management/roster/players/1/club", body, params...)
	suite.handler.UpdatePlayerClub(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSeasonRoster tests the grouped view over HTTP
func (suite *RosterHandlerTestSuite) TestSeasonRoster() {
	season := suite.createTestSeason("2024/25")
	club := suite.createTestClub("Eagles")
	suite.db.Create(&models.SeasonClub{SeasonID: season.ID, ClubID: club.ID, Assigned: true})

	jane := suite.createTestPlayer("Jane")
	suite.db.Model(&models.Player{}).Where("id = ?", jane.ID).Update("current_club_id", club.ID)
	suite.db.Create(&models.SeasonPlayer{SeasonID: season.ID, PlayerID: jane.ID, Assigned: true})

	carol := suite.createTestPlayer("Carol")
	suite.db.Create(&models.SeasonPlayer{SeasonID: season.ID, PlayerID: carol.ID, Assigned: true})

	params := []gin.Param{{Key: "seasonId", Value: "1"}}
	c, w := suite.createContext("GET", "/api/v1/admin/season-management/roster/1", nil, params...)
	suite.handler.SeasonRoster(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	clubs := response["clubs"].([]interface{})
	suite.Require().Len(clubs, 1)
	group := clubs[0].(map[string]interface{})
	assert.Equal(suite.T(), "Eagles", group["club"].(map[string]interface{})["name"])
	assert.Len(suite.T(), group["players"].([]interface{}), 1)

	freeAgents := response["free_agents"].([]interface{})
	suite.Require().Len(freeAgents, 1)
	assert.Equal(suite.T(), "Carol", freeAgents[0].(map[string]interface{})["name"])
}

// TestSuite runs the test suite
func TestRosterHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RosterHandlerTestSuite))
}
