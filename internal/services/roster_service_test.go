package services

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func uint64Ptr(v uint64) *uint64 { return &v }

func TestNormalizeClubRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     *string
		want    *uint64
		wantErr bool
	}{
		{name: "nil means free agent", ref: nil, want: nil},
		{name: "empty string means free agent", ref: strPtr(""), want: nil},
		{name: "free-agents sentinel", ref: strPtr("free-agents"), want: nil},
		{name: "no-club sentinel", ref: strPtr("no-club"), want: nil},
		{name: "numeric id", ref: strPtr("42"), want: uint64Ptr(42)},
		{name: "garbage is rejected", ref: strPtr("eagles"), wantErr: true},
		{name: "negative is rejected", ref: strPtr("-1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeClubRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestGroupByClub(t *testing.T) {
	eagles := models.Club{ID: 1, Name: "Eagles"}
	hawks := models.Club{ID: 2, Name: "Hawks"}
	outside := models.Club{ID: 3, Name: "Outside"}

	jane := models.Player{ID: 10, Name: "Jane", CurrentClubID: uint64Ptr(1)}
	bob := models.Player{ID: 11, Name: "Bob", CurrentClubID: uint64Ptr(3), CurrentClub: &outside}
	carol := models.Player{ID: 12, Name: "Carol"}

	roster := GroupByClub([]models.Club{hawks, eagles}, []models.Player{jane, bob, carol})

	// Empty clubs keep their bucket, extra buckets come from player
	// pointers, and the result is name-sorted
	require.Len(t, roster.Clubs, 3)
	assert.Equal(t, "Eagles", roster.Clubs[0].Club.Name)
	assert.Equal(t, "Hawks", roster.Clubs[1].Club.Name)
	assert.Equal(t, "Outside", roster.Clubs[2].Club.Name)

	require.Len(t, roster.Clubs[0].Players, 1)
	assert.Equal(t, "Jane", roster.Clubs[0].Players[0].Name)
	assert.Empty(t, roster.Clubs[1].Players)
	require.Len(t, roster.Clubs[2].Players, 1)
	assert.Equal(t, "Bob", roster.Clubs[2].Players[0].Name)

	require.Len(t, roster.FreeAgents, 1)
	assert.Equal(t, "Carol", roster.FreeAgents[0].Name)
}

func TestGroupByClub_Empty(t *testing.T) {
	roster := GroupByClub(nil, nil)

	assert.Empty(t, roster.Clubs)
	assert.NotNil(t, roster.FreeAgents)
	assert.Empty(t, roster.FreeAgents)
}

// RosterServiceTestSuite defines the test suite for RosterService
type RosterServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	notifier *captureNotifier
	service  *RosterService
}

// SetupTest runs before each test
func (suite *RosterServiceTestSuite) SetupTest() {
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

	suite.notifier = &captureNotifier{}
	suite.service = NewRosterService(
		repository.NewSeasonRepository(suite.db),
		repository.NewClubRepository(suite.db),
		repository.NewPlayerRepository(suite.db),
		repository.NewMembershipRepository(suite.db),
		suite.notifier,
	)
}

// TearDownTest runs after each test
func (suite *RosterServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RosterServiceTestSuite) createTestSeason(name string) *models.Season {
	league := &models.League{Name: name + " League", Active: true}
	suite.db.Create(league)
	season := &models.Season{LeagueID: league.ID, Name: name, Active: true}
	suite.db.Create(season)
	return season
}

func (suite *RosterServiceTestSuite) createTestClub(name string) *models.Club {
	club := &models.Club{Name: name, Active: true}
	suite.db.Create(club)
	return club
}

func (suite *RosterServiceTestSuite) createTestPlayer(name string, clubID *uint64) *models.Player {
	player := &models.Player{Name: name, CurrentClubID: clubID, Active: true}
	suite.db.Create(player)
	return player
}

func (suite *RosterServiceTestSuite) joinClub(seasonID, clubID uint64, assigned bool) {
	suite.Require().NoError(suite.db.Create(&models.SeasonClub{SeasonID: seasonID, ClubID: clubID, Assigned: assigned}).Error)
}

func (suite *RosterServiceTestSuite) joinPlayer(seasonID, playerID uint64, assigned bool) {
	suite.Require().NoError(suite.db.Create(&models.SeasonPlayer{SeasonID: seasonID, PlayerID: playerID, Assigned: assigned}).Error)
}

// TestAssignPlayerClub tests setting the pointer by numeric reference
func (suite *RosterServiceTestSuite) TestAssignPlayerClub() {
	season := suite.createTestSeason("2024/25")
	club := suite.createTestClub("Eagles")
	player := suite.createTestPlayer("Jane", nil)
	suite.joinPlayer(season.ID, player.ID, true)

	ref := strconv.FormatUint(club.ID, 10)
	updated, err := suite.service.AssignPlayerClub(player.ID, &ref)
	suite.Require().NoError(err)

	suite.Require().NotNil(updated.CurrentClubID)
	assert.Equal(suite.T(), club.ID, *updated.CurrentClubID)
	suite.Require().NotNil(updated.CurrentClub)
	assert.Equal(suite.T(), "Eagles", updated.CurrentClub.Name)

	// One update event per season the player belongs to
	assert.Equal(suite.T(), 1, suite.notifier.count("player-club-updated"))
}

// brokenSeasonLister fails season listing to exercise the best-effort
// broadcast path.
type brokenSeasonLister struct {
	repository.MembershipRepository
}

func (brokenSeasonLister) SeasonIDsForPlayer(uint64) ([]uint64, error) {
	return nil, errors.New("listing failed")
}

// TestAssignPlayerClub_BroadcastScopeFailureTolerated tests that a failure
// while scoping the broadcast never fails the pointer update
func (suite *RosterServiceTestSuite) TestAssignPlayerClub_BroadcastScopeFailureTolerated() {
	club := suite.createTestClub("Eagles")
	player := suite.createTestPlayer("Jane", nil)

	service := NewRosterService(
		repository.NewSeasonRepository(suite.db),
		repository.NewClubRepository(suite.db),
		repository.NewPlayerRepository(suite.db),
		brokenSeasonLister{repository.NewMembershipRepository(suite.db)},
		suite.notifier,
	)

	ref := strconv.FormatUint(club.ID, 10)
	updated, err := service.AssignPlayerClub(player.ID, &ref)
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.CurrentClubID)
	assert.Equal(suite.T(), club.ID, *updated.CurrentClubID)

	// Nothing could be notified, but the update stuck
	assert.Zero(suite.T(), suite.notifier.count("player-club-updated"))
}

// TestAssignPlayerClub_SentinelClearsPointer tests the free-agent sentinels
func (suite *RosterServiceTestSuite) TestAssignPlayerClub_SentinelClearsPointer() {
	club := suite.createTestClub("Eagles")
	player := suite.createTestPlayer("Jane", &club.ID)

	updated, err := suite.service.AssignPlayerClub(player.ID, strPtr("free-agents"))
	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.CurrentClubID)

	// Membership with the old club's seasons is not required and not checked
	updated, err = suite.service.AssignPlayerClub(player.ID, nil)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.CurrentClubID)
}

// TestAssignPlayerClub_NoSharedSeasonRequired tests that the pointer is
// decoupled from season membership
func (suite *RosterServiceTestSuite) TestAssignPlayerClub_NoSharedSeasonRequired() {
	seasonA := suite.createTestSeason("2024/25")
	seasonB := suite.createTestSeason("2023/24")
	club := suite.createTestClub("Eagles")
	suite.joinClub(seasonA.ID, club.ID, true)

	player := suite.createTestPlayer("Jane", nil)
	suite.joinPlayer(seasonB.ID, player.ID, true)

	ref := strconv.FormatUint(club.ID, 10)
	updated, err := suite.service.AssignPlayerClub(player.ID, &ref)
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.CurrentClubID)
	assert.Equal(suite.T(), club.ID, *updated.CurrentClubID)
}

// TestAssignPlayerClub_MissingPlayer tests the not-found path
func (suite *RosterServiceTestSuite) TestAssignPlayerClub_MissingPlayer() {
	_, err := suite.service.AssignPlayerClub(9999, nil)

	suite.Require().Error(err)
	assert.True(suite.T(), apierrors.IsKind(err, apierrors.KindNotFound))
}

// TestAssignPlayerClub_MissingClub tests the dangling-reference path
func (suite *RosterServiceTestSuite) TestAssignPlayerClub_MissingClub() {
	player := suite.createTestPlayer("Jane", nil)

	_, err := suite.service.AssignPlayerClub(player.ID, strPtr("9999"))

	suite.Require().Error(err)
	assert.True(suite.T(), apierrors.IsKind(err, apierrors.KindDependency))
}

// TestAssignedRoster_AdminView tests the roster seen by administrators
func (suite *RosterServiceTestSuite) TestAssignedRoster_AdminView() {
	season := suite.createTestSeason("2024/25")

	eagles := suite.createTestClub("Eagles")
	hawks := suite.createTestClub("Hawks")
	outside := suite.createTestClub("Outside")
	suite.joinClub(season.ID, eagles.ID, true)
	suite.joinClub(season.ID, hawks.ID, false) // member but unassigned

	jane := suite.createTestPlayer("Jane", &eagles.ID)
	bob := suite.createTestPlayer("Bob", &outside.ID)
	carol := suite.createTestPlayer("Carol", nil)
	suite.joinPlayer(season.ID, jane.ID, true)
	suite.joinPlayer(season.ID, bob.ID, true)
	suite.joinPlayer(season.ID, carol.ID, true)

	roster, err := suite.service.AssignedRoster(season.ID, false)
	suite.Require().NoError(err)

	// Hawks is excluded (unassigned); Outside gets a bucket through Bob's
	// pointer even though it is not a season member
	suite.Require().Len(roster.Clubs, 2)
	assert.Equal(suite.T(), "Eagles", roster.Clubs[0].Club.Name)
	assert.Equal(suite.T(), "Outside", roster.Clubs[1].Club.Name)

	suite.Require().Len(roster.Clubs[0].Players, 1)
	assert.Equal(suite.T(), "Jane", roster.Clubs[0].Players[0].Name)
	suite.Require().Len(roster.Clubs[1].Players, 1)
	assert.Equal(suite.T(), "Bob", roster.Clubs[1].Players[0].Name)

	suite.Require().Len(roster.FreeAgents, 1)
	assert.Equal(suite.T(), "Carol", roster.FreeAgents[0].Name)
}

// TestAssignedRoster_PublicView tests that the public projection hides
// players in clubs outside the season while keeping free agents visible
func (suite *RosterServiceTestSuite) TestAssignedRoster_PublicView() {
	season := suite.createTestSeason("2024/25")

	eagles := suite.createTestClub("Eagles")
	outside := suite.createTestClub("Outside")
	suite.joinClub(season.ID, eagles.ID, true)

	jane := suite.createTestPlayer("Jane", &eagles.ID)
	bob := suite.createTestPlayer("Bob", &outside.ID)
	carol := suite.createTestPlayer("Carol", nil)
	suite.joinPlayer(season.ID, jane.ID, true)
	suite.joinPlayer(season.ID, bob.ID, true)
	suite.joinPlayer(season.ID, carol.ID, true)

	roster, err := suite.service.AssignedRoster(season.ID, true)
	suite.Require().NoError(err)

	suite.Require().Len(roster.Clubs, 1)
	assert.Equal(suite.T(), "Eagles", roster.Clubs[0].Club.Name)
	suite.Require().Len(roster.Clubs[0].Players, 1)
	assert.Equal(suite.T(), "Jane", roster.Clubs[0].Players[0].Name)

	suite.Require().Len(roster.FreeAgents, 1)
	assert.Equal(suite.T(), "Carol", roster.FreeAgents[0].Name)
}

// TestAssignedRoster_EmptyAssignedClubStillListed tests that assigned clubs
// with no players keep their bucket
func (suite *RosterServiceTestSuite) TestAssignedRoster_EmptyAssignedClubStillListed() {
	season := suite.createTestSeason("2024/25")
	eagles := suite.createTestClub("Eagles")
	suite.joinClub(season.ID, eagles.ID, true)

	roster, err := suite.service.AssignedRoster(season.ID, true)
	suite.Require().NoError(err)

	suite.Require().Len(roster.Clubs, 1)
	assert.Equal(suite.T(), "Eagles", roster.Clubs[0].Club.Name)
	assert.Empty(suite.T(), roster.Clubs[0].Players)
}

// TestAssignedRoster_SeasonNotFound tests the missing-season path
func (suite *RosterServiceTestSuite) TestAssignedRoster_SeasonNotFound() {
	_, err := suite.service.AssignedRoster(9999, false)

	suite.Require().Error(err)
	assert.True(suite.T(), apierrors.IsKind(err, apierrors.KindNotFound))
}

// TestSuite runs the test suite
func TestRosterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RosterServiceTestSuite))
}
