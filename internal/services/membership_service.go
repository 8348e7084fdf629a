package services

import (
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/realtime"
	"github.com/xblade/league-api/internal/repository"
	"gorm.io/gorm"
)

// MembershipService manages season-club and season-player join rows. Adds
// go through the storage layer's atomic find-or-create so concurrent
// duplicate calls converge on one row; removes are idempotent.
type MembershipService struct {
	seasonRepo repository.SeasonRepository
	clubRepo   repository.ClubRepository
	playerRepo repository.PlayerRepository
	members    repository.MembershipRepository
	notifier   Notifier
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	seasonRepo repository.SeasonRepository,
	clubRepo repository.ClubRepository,
	playerRepo repository.PlayerRepository,
	members repository.MembershipRepository,
	notifier Notifier,
) *MembershipService {
	return &MembershipService{
		seasonRepo: seasonRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		members:    members,
		notifier:   notifier,
	}
}

// ClubMemberView is the denormalized club + join-row read model.
type ClubMemberView struct {
	Club         models.Club
	Assigned     bool
	MembershipID uint64
}

// PlayerMemberView is the denormalized player + join-row read model.
type PlayerMemberView struct {
	Player       models.Player
	Assigned     bool
	MembershipID uint64
}

// CreateClubInput holds the fields for a club created directly into a season.
type CreateClubInput struct {
	Name        string
	WebURL      string
	Description string
}

// CreatePlayerInput holds the fields for a player created directly into a season.
type CreatePlayerInput struct {
	Name         string
	Position     string
	JerseyNumber *int
}

func (s *MembershipService) requireSeason(seasonID uint64) error {
	if _, err := s.seasonRepo.FindByID(seasonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewDependency("season_id", "season %d does not exist", seasonID)
		}
		return fmt.Errorf("failed to find season: %w", err)
	}
	return nil
}

// AddClub joins a club to a season. The insert rides on the unique
// (season, club) index: a concurrent duplicate call gets the existing row
// back instead of an error. created reports which case happened.
func (s *MembershipService) AddClub(seasonID, clubID uint64) (*models.SeasonClub, bool, error) {
	if err := s.requireSeason(seasonID); err != nil {
		return nil, false, err
	}
	if _, err := s.clubRepo.FindByID(clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apierrors.NewDependency("club_id", "club %d does not exist", clubID)
		}
		return nil, false, fmt.Errorf("failed to find club: %w", err)
	}

	sc := &models.SeasonClub{SeasonID: seasonID, ClubID: clubID, Assigned: true}
	created, err := s.members.AddClub(sc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add club to season: %w", err)
	}

	if created {
		notify(s.notifier, seasonID, realtime.EventClubAssigned, map[string]interface{}{"club_id": clubID})
	}
	return sc, created, nil
}

// RemoveClub removes a club's join row. Absence is not an error: repeated
// calls succeed and alreadyAbsent reports that nothing was there to remove.
func (s *MembershipService) RemoveClub(seasonID, clubID uint64) (alreadyAbsent bool, err error) {
	removed, err := s.members.RemoveClub(seasonID, clubID)
	if err != nil {
		return false, fmt.Errorf("failed to remove club from season: %w", err)
	}

	if removed {
		notify(s.notifier, seasonID, realtime.EventClubRemoved, map[string]interface{}{"club_id": clubID})
	}
	return !removed, nil
}

// SetClubAssignment toggles the assignment flag on the club's join row.
func (s *MembershipService) SetClubAssignment(seasonID, clubID uint64, assigned bool) (*ClubMemberView, error) {
	club, err := s.clubRepo.FindByID(clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewNotFound("club not found")
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}

	updated, err := s.members.SetClubAssigned(seasonID, clubID, assigned)
	if err != nil {
		return nil, fmt.Errorf("failed to update club assignment: %w", err)
	}
	if !updated {
		return nil, apierrors.NewNotFound("club is not a member of this season")
	}

	sc, err := s.members.FindClub(seasonID, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload club membership: %w", err)
	}

	notify(s.notifier, seasonID, realtime.EventClubAssigned, map[string]interface{}{
		"club_id":  clubID,
		"assigned": assigned,
	})
	return &ClubMemberView{Club: *club, Assigned: sc.Assigned, MembershipID: sc.ID}, nil
}

// CreateClubAndAdd creates a club stamped with the season as its origin and
// joins it in one call. Two concurrent calls with the same payload converge
// on one club and one join row per created club.
func (s *MembershipService) CreateClubAndAdd(seasonID uint64, input CreateClubInput) (*models.Club, *models.SeasonClub, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, apierrors.NewValidation("name", "name is required")
	}
	if err := s.requireSeason(seasonID); err != nil {
		return nil, nil, err
	}

	club := &models.Club{
		Name:           strings.TrimSpace(input.Name),
		WebURL:         input.WebURL,
		Description:    input.Description,
		OriginSeasonID: &seasonID,
		Active:         true,
	}
	if _, err := s.clubRepo.FindOrCreate(club); err != nil {
		return nil, nil, fmt.Errorf("failed to create club: %w", err)
	}

	sc := &models.SeasonClub{SeasonID: seasonID, ClubID: club.ID, Assigned: true}
	joined, err := s.members.AddClub(sc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add club to season: %w", err)
	}

	if joined {
		notify(s.notifier, seasonID, realtime.EventClubAssigned, map[string]interface{}{"club_id": club.ID})
	}
	return club, sc, nil
}

// ListClubMembers returns the season's club memberships. Rows whose club
// has been deleted out from under them are dropped, never surfaced as
// errors.
func (s *MembershipService) ListClubMembers(seasonID uint64, filter repository.AssignmentFilter) ([]ClubMemberView, error) {
	rows, err := s.members.ListClubs(seasonID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list season clubs: %w", err)
	}

	views := make([]ClubMemberView, 0, len(rows))
	for _, row := range rows {
		if row.Club.ID == 0 {
			continue
		}
		views = append(views, ClubMemberView{
			Club:         row.Club,
			Assigned:     row.Assigned,
			MembershipID: row.ID,
		})
	}
	return views, nil
}

// ListAvailableClubs returns the clubs still pickable for the season:
// active clubs originated in it with no join row, plus members whose
// assignment flag is off.
func (s *MembershipService) ListAvailableClubs(seasonID uint64) ([]models.Club, error) {
	if err := s.requireSeason(seasonID); err != nil {
		return nil, err
	}
	clubs, err := s.clubRepo.ListAvailableForSeason(seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available clubs: %w", err)
	}
	return clubs, nil
}

// AddPlayer joins a player to a season via the same atomic find-or-create
// path as AddClub.
func (s *MembershipService) AddPlayer(seasonID, playerID uint64) (*models.SeasonPlayer, bool, error) {
	if err := s.requireSeason(seasonID); err != nil {
		return nil, false, err
	}
	if _, err := s.playerRepo.FindByID(playerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apierrors.NewDependency("player_id", "player %d does not exist", playerID)
		}
		return nil, false, fmt.Errorf("failed to find player: %w", err)
	}

	sp := &models.SeasonPlayer{SeasonID: seasonID, PlayerID: playerID, Assigned: true}
	created, err := s.members.AddPlayer(sp)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add player to season: %w", err)
	}

	if created {
		notify(s.notifier, seasonID, realtime.EventPlayerAssigned, map[string]interface{}{"player_id": playerID})
	}
	return sp, created, nil
}

// RemovePlayer removes a player's join row; absence is reported, not failed.
func (s *MembershipService) RemovePlayer(seasonID, playerID uint64) (alreadyAbsent bool, err error) {
	removed, err := s.members.RemovePlayer(seasonID, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to remove player from season: %w", err)
	}

	if removed {
		notify(s.notifier, seasonID, realtime.EventPlayerRemoved, map[string]interface{}{"player_id": playerID})
	}
	return !removed, nil
}

// SetPlayerAssignment toggles the assignment flag on the player's join row.
func (s *MembershipService) SetPlayerAssignment(seasonID, playerID uint64, assigned bool) (*PlayerMemberView, error) {
	player, err := s.playerRepo.FindByID(playerID, "CurrentClub")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewNotFound("player not found")
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	updated, err := s.members.SetPlayerAssigned(seasonID, playerID, assigned)
	if err != nil {
		return nil, fmt.Errorf("failed to update player assignment: %w", err)
	}
	if !updated {
		return nil, apierrors.NewNotFound("player is not a member of this season")
	}

	sp, err := s.members.FindPlayer(seasonID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload player membership: %w", err)
	}

	notify(s.notifier, seasonID, realtime.EventPlayerAssigned, map[string]interface{}{
		"player_id": playerID,
		"assigned":  assigned,
	})
	return &PlayerMemberView{Player: *player, Assigned: sp.Assigned, MembershipID: sp.ID}, nil
}

// CreatePlayerAndAdd creates a player stamped with the season as its origin
// and joins it in one call. New players start as free agents.
func (s *MembershipService) CreatePlayerAndAdd(seasonID uint64, input CreatePlayerInput) (*models.Player, *models.SeasonPlayer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, apierrors.NewValidation("name", "name is required")
	}
	if err := s.requireSeason(seasonID); err != nil {
		return nil, nil, err
	}

	player := &models.Player{
		Name:           strings.TrimSpace(input.Name),
		Position:       input.Position,
		JerseyNumber:   input.JerseyNumber,
		CurrentClubID:  nil,
		OriginSeasonID: &seasonID,
		Active:         true,
	}
	if _, err := s.playerRepo.FindOrCreate(player); err != nil {
		return nil, nil, fmt.Errorf("failed to create player: %w", err)
	}

	sp := &models.SeasonPlayer{SeasonID: seasonID, PlayerID: player.ID, Assigned: true}
	joined, err := s.members.AddPlayer(sp)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add player to season: %w", err)
	}

	if joined {
		notify(s.notifier, seasonID, realtime.EventPlayerAssigned, map[string]interface{}{"player_id": player.ID})
	}
	return player, sp, nil
}

// ListPlayerMembers returns the season's player memberships with current
// clubs preloaded; rows with deleted players are dropped.
func (s *MembershipService) ListPlayerMembers(seasonID uint64, filter repository.AssignmentFilter) ([]PlayerMemberView, error) {
	rows, err := s.members.ListPlayers(seasonID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list season players: %w", err)
	}

	views := make([]PlayerMemberView, 0, len(rows))
	for _, row := range rows {
		if row.Player.ID == 0 {
			continue
		}
		views = append(views, PlayerMemberView{
			Player:       row.Player,
			Assigned:     row.Assigned,
			MembershipID: row.ID,
		})
	}
	return views, nil
}

// ListAvailablePlayers returns the players still pickable for the season:
// active players originated in it with no join row, plus members whose
// assignment flag is off.
func (s *MembershipService) ListAvailablePlayers(seasonID uint64) ([]models.Player, error) {
	if err := s.requireSeason(seasonID); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListAvailableForSeason(seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	return players, nil
}
