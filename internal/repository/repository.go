package repository

import (
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/utils"
)

// AssignmentFilter selects which membership rows a listing returns.
type AssignmentFilter int

const (
	// FilterAll returns every membership row regardless of assignment.
	FilterAll AssignmentFilter = iota
	// FilterAssigned returns rows with assigned = true.
	FilterAssigned
	// FilterUnassigned returns rows with assigned = false.
	FilterUnassigned
)

// LeagueRepository defines the interface for league data access
type LeagueRepository interface {
	Create(league *models.League) error
	FindByID(id uint64) (*models.League, error)
	List(activeOnly bool) ([]models.League, error)
	Update(league *models.League) error

	// Delete removes the league row itself; dependent cleanup is the
	// cascade coordinator's job.
	Delete(id uint64) error
}

// SeasonRepository defines the interface for season data access
type SeasonRepository interface {
	Create(season *models.Season) error
	FindByID(id uint64, preload ...string) (*models.Season, error)
	List(leagueID *uint64, activeOnly bool) ([]models.Season, error)
	Update(season *models.Season) error
	Delete(id uint64) error

	// FindIDsByLeague returns the ids of every season in the league.
	FindIDsByLeague(leagueID uint64) ([]uint64, error)

	// DeleteByLeague removes every season row belonging to the league.
	DeleteByLeague(leagueID uint64) error
}

// ClubRepository defines the interface for club data access
type ClubRepository interface {
	Create(club *models.Club) error

	// FindOrCreate inserts the club, or loads the existing row on a
	// (origin_season_id, name) conflict. created reports which happened.
	FindOrCreate(club *models.Club) (created bool, err error)

	FindByID(id uint64) (*models.Club, error)
	FindByIDs(ids []uint64) ([]models.Club, error)
	List(activeOnly bool) ([]models.Club, error)
	Update(club *models.Club) error
	Delete(id uint64) error
	DeleteByIDs(ids []uint64) error

	// ListAvailableForSeason returns active clubs originated in the season
	// that have no membership row for it yet, plus members whose assignment
	// flag is off.
	ListAvailableForSeason(seasonID uint64) ([]models.Club, error)

	// ClearOriginSeason nulls origin_season_id on the given clubs.
	ClearOriginSeason(ids []uint64) error
}

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	Create(player *models.Player) error

	// FindOrCreate inserts the player, or loads the existing row on a
	// (origin_season_id, name) conflict. created reports which happened.
	FindOrCreate(player *models.Player) (created bool, err error)

	FindByID(id uint64, preload ...string) (*models.Player, error)
	FindByIDs(ids []uint64) ([]models.Player, error)
	List(activeOnly bool, currentClubID *uint64) ([]models.Player, error)

	// ListPaged retrieves players page by page with the total count.
	ListPaged(activeOnly bool, params utils.PaginationParams) ([]models.Player, int64, error)

	Update(player *models.Player) error
	Delete(id uint64) error
	DeleteByIDs(ids []uint64) error

	// ListAvailableForSeason returns active players originated in the season
	// that have no membership row for it yet, plus members whose assignment
	// flag is off.
	ListAvailableForSeason(seasonID uint64) ([]models.Player, error)

	// ClearOriginSeason nulls origin_season_id on the given players.
	ClearOriginSeason(ids []uint64) error

	// SetCurrentClub updates the player's club pointer; nil means free agent.
	SetCurrentClub(playerID uint64, clubID *uint64) error

	// ClearCurrentClubForClubs nulls current_club_id on every player pointing
	// at one of the given clubs.
	ClearCurrentClubForClubs(clubIDs []uint64) error
}

// MembershipRepository defines the interface for season join-row access.
// AddClub and AddPlayer are atomic find-or-create primitives: the insert
// rides on the unique (season, entity) index and a conflict yields the
// existing row with created = false. Callers never pre-check existence.
type MembershipRepository interface {
	AddClub(sc *models.SeasonClub) (created bool, err error)
	FindClub(seasonID, clubID uint64) (*models.SeasonClub, error)
	RemoveClub(seasonID, clubID uint64) (removed bool, err error)
	SetClubAssigned(seasonID, clubID uint64, assigned bool) (updated bool, err error)
	ListClubs(seasonID uint64, filter AssignmentFilter) ([]models.SeasonClub, error)
	ListClubsBySeasonIDs(seasonIDs []uint64) ([]models.SeasonClub, error)
	CountClubMembershipsOutside(clubID uint64, excludedSeasonIDs []uint64) (int64, error)
	DeleteClubMemberships(clubID uint64) error
	DeleteClubsBySeasonIDs(seasonIDs []uint64) error

	AddPlayer(sp *models.SeasonPlayer) (created bool, err error)
	FindPlayer(seasonID, playerID uint64) (*models.SeasonPlayer, error)
	RemovePlayer(seasonID, playerID uint64) (removed bool, err error)
	SetPlayerAssigned(seasonID, playerID uint64, assigned bool) (updated bool, err error)
	ListPlayers(seasonID uint64, filter AssignmentFilter) ([]models.SeasonPlayer, error)
	ListPlayersBySeasonIDs(seasonIDs []uint64) ([]models.SeasonPlayer, error)
	CountPlayerMembershipsOutside(playerID uint64, excludedSeasonIDs []uint64) (int64, error)
	DeletePlayerMemberships(playerID uint64) error
	DeletePlayersBySeasonIDs(seasonIDs []uint64) error

	// SeasonIDsForPlayer returns every season the player is a member of,
	// used to scope roster-change broadcasts.
	SeasonIDsForPlayer(playerID uint64) ([]uint64, error)

	// SeasonIDsForClub returns every season the club is a member of.
	SeasonIDsForClub(clubID uint64) ([]uint64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uint64) (deleted bool, err error)
}
