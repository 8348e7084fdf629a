package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/realtime"
	"github.com/xblade/league-api/internal/repository"
	"gorm.io/gorm"
)

// RosterService maintains the player's current-club pointer and derives the
// grouped roster views. Club assignment is deliberately decoupled from
// season membership: pointing a player at a club never requires the two to
// share a season.
type RosterService struct {
	seasonRepo repository.SeasonRepository
	clubRepo   repository.ClubRepository
	playerRepo repository.PlayerRepository
	members    repository.MembershipRepository
	notifier   Notifier
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	seasonRepo repository.SeasonRepository,
	clubRepo repository.ClubRepository,
	playerRepo repository.PlayerRepository,
	members repository.MembershipRepository,
	notifier Notifier,
) *RosterService {
	return &RosterService{
		seasonRepo: seasonRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		members:    members,
		notifier:   notifier,
	}
}

// RosterGroup is one club's bucket in a grouped roster.
type RosterGroup struct {
	Club    models.Club
	Players []models.Player
}

// GroupedRoster partitions players by current club, with free agents in
// their own reserved bucket.
type GroupedRoster struct {
	Clubs      []RosterGroup
	FreeAgents []models.Player
}

// NormalizeClubRef collapses every "no club" sentinel the clients send
// (null, empty string, "free-agents", "no-club") to nil, and parses
// anything else as a club id.
func NormalizeClubRef(ref *string) (*uint64, error) {
	if ref == nil {
		return nil, nil
	}
	switch *ref {
	case "", "free-agents", "no-club":
		return nil, nil
	}

	id, err := strconv.ParseUint(*ref, 10, 64)
	if err != nil {
		return nil, apierrors.NewValidation("current_club", "invalid club reference %q", *ref)
	}
	return &id, nil
}

// AssignPlayerClub sets (or clears) the player's current club and notifies
// every season the player is a member of. Membership in the club's seasons
// is intentionally not checked.
func (s *RosterService) AssignPlayerClub(playerID uint64, clubRef *string) (*models.Player, error) {
	clubID, err := NormalizeClubRef(clubRef)
	if err != nil {
		return nil, err
	}

	if _, err := s.playerRepo.FindByID(playerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewNotFound("player not found")
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	if clubID != nil {
		if _, err := s.clubRepo.FindByID(*clubID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.NewDependency("current_club", "club %d does not exist", *clubID)
			}
			return nil, fmt.Errorf("failed to find club: %w", err)
		}
	}

	if err := s.playerRepo.SetCurrentClub(playerID, clubID); err != nil {
		return nil, fmt.Errorf("failed to update player club: %w", err)
	}

	player, err := s.playerRepo.FindByID(playerID, "CurrentClub")
	if err != nil {
		return nil, fmt.Errorf("failed to reload player: %w", err)
	}

	// Broadcast scoping is best-effort; a failure never fails the update.
	seasonIDs, err := s.members.SeasonIDsForPlayer(playerID)
	if err != nil {
		log.Printf("roster: failed to list seasons of player %d for broadcast: %v", playerID, err)
	}
	for _, seasonID := range seasonIDs {
		notify(s.notifier, seasonID, realtime.EventPlayerClubUpdated, map[string]interface{}{
			"player_id":       playerID,
			"current_club_id": clubID,
		})
	}

	return player, nil
}

// GroupByClub partitions players by CurrentClubID. Players pointing at a
// club not present in clubs still get a bucket built from their preloaded
// club; nil pointers land in the free-agents bucket. Pure derivation, no
// stored state.
func GroupByClub(clubs []models.Club, players []models.Player) GroupedRoster {
	byClub := make(map[uint64]*RosterGroup, len(clubs))
	order := make([]uint64, 0, len(clubs))
	for _, club := range clubs {
		club := club
		byClub[club.ID] = &RosterGroup{Club: club, Players: []models.Player{}}
		order = append(order, club.ID)
	}

	roster := GroupedRoster{FreeAgents: []models.Player{}}
	for _, player := range players {
		if player.CurrentClubID == nil {
			roster.FreeAgents = append(roster.FreeAgents, player)
			continue
		}
		group, ok := byClub[*player.CurrentClubID]
		if !ok {
			club := models.Club{ID: *player.CurrentClubID}
			if player.CurrentClub != nil {
				club = *player.CurrentClub
			}
			group = &RosterGroup{Club: club, Players: []models.Player{}}
			byClub[club.ID] = group
			order = append(order, club.ID)
		}
		group.Players = append(group.Players, player)
	}

	roster.Clubs = make([]RosterGroup, 0, len(order))
	for _, id := range order {
		roster.Clubs = append(roster.Clubs, *byClub[id])
	}
	sort.SliceStable(roster.Clubs, func(i, j int) bool {
		return roster.Clubs[i].Club.Name < roster.Clubs[j].Club.Name
	})
	return roster
}

// AssignedRoster builds the season's roster view from assigned memberships.
// Buckets are seeded from the season's assigned clubs so empty clubs still
// appear; unassigned memberships are excluded even though their rows exist.
// publicOnly additionally hides players whose current club is not an
// assigned member of the season (free agents stay visible).
func (s *RosterService) AssignedRoster(seasonID uint64, publicOnly bool) (*GroupedRoster, error) {
	if _, err := s.seasonRepo.FindByID(seasonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewNotFound("season not found")
		}
		return nil, fmt.Errorf("failed to find season: %w", err)
	}

	clubRows, err := s.members.ListClubs(seasonID, repository.FilterAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned clubs: %w", err)
	}
	clubs := make([]models.Club, 0, len(clubRows))
	assignedClubIDs := make(map[uint64]bool, len(clubRows))
	for _, row := range clubRows {
		if row.Club.ID == 0 {
			continue
		}
		clubs = append(clubs, row.Club)
		assignedClubIDs[row.Club.ID] = true
	}

	playerRows, err := s.members.ListPlayers(seasonID, repository.FilterAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned players: %w", err)
	}
	players := make([]models.Player, 0, len(playerRows))
	for _, row := range playerRows {
		if row.Player.ID == 0 {
			continue
		}
		if publicOnly && row.Player.CurrentClubID != nil && !assignedClubIDs[*row.Player.CurrentClubID] {
			continue
		}
		players = append(players, row.Player)
	}

	roster := GroupByClub(clubs, players)
	return &roster, nil
}
