package services

import (
	"errors"
	"fmt"
	"log"

	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/realtime"
	"github.com/xblade/league-api/internal/repository"
	"gorm.io/gorm"
)

// CascadeService coordinates deletion of leagues, seasons, clubs and
// players together with their dependent join rows.
//
// Every delete runs in two phases. The snapshot phase computes, before any
// row is touched, which join rows fall inside the deleted season set and
// whether each dependent club/player has membership anywhere outside it.
// The apply phase then hard-deletes dependents with no outside membership,
// detaches the rest by clearing their origin season, purges the scoped join
// rows and finally removes the root rows. Fate is never re-checked after a
// partial deletion.
//
// The root delete must succeed or the operation fails. Per-dependent
// cleanup is best-effort: a failure is logged and the loop continues, so
// the caller can see success while some cleanup is still pending. That
// eventual-consistency trade-off is deliberate.
type CascadeService struct {
	leagueRepo repository.LeagueRepository
	seasonRepo repository.SeasonRepository
	clubRepo   repository.ClubRepository
	playerRepo repository.PlayerRepository
	members    repository.MembershipRepository
	notifier   Notifier
}

// NewCascadeService creates a new CascadeService.
func NewCascadeService(
	leagueRepo repository.LeagueRepository,
	seasonRepo repository.SeasonRepository,
	clubRepo repository.ClubRepository,
	playerRepo repository.PlayerRepository,
	members repository.MembershipRepository,
	notifier Notifier,
) *CascadeService {
	return &CascadeService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		members:    members,
		notifier:   notifier,
	}
}

// seasonSetSnapshot captures the pre-mutation state of a season-set delete.
type seasonSetSnapshot struct {
	seasonIDs []uint64

	// ids of dependents with no membership outside the season set; these
	// are hard-deleted
	doomedClubIDs   []uint64
	doomedPlayerIDs []uint64

	// ids of dependents that survive through outside membership; these are
	// detached by clearing their origin season
	survivorClubIDs   []uint64
	survivorPlayerIDs []uint64
}

// snapshotSeasonSet computes the fate of every club and player touched by
// deleting the given seasons. All cross-membership checks run before any
// join row is removed; checking after partial deletion would report "no
// other membership" for everything.
func (s *CascadeService) snapshotSeasonSet(seasonIDs []uint64) (*seasonSetSnapshot, error) {
	snap := &seasonSetSnapshot{seasonIDs: seasonIDs}

	clubRows, err := s.members.ListClubsBySeasonIDs(seasonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot season clubs: %w", err)
	}
	seenClubs := make(map[uint64]bool)
	for _, row := range clubRows {
		if seenClubs[row.ClubID] {
			continue
		}
		seenClubs[row.ClubID] = true

		outside, err := s.members.CountClubMembershipsOutside(row.ClubID, seasonIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check club %d cross-membership: %w", row.ClubID, err)
		}
		if outside == 0 {
			snap.doomedClubIDs = append(snap.doomedClubIDs, row.ClubID)
		} else {
			snap.survivorClubIDs = append(snap.survivorClubIDs, row.ClubID)
		}
	}

	playerRows, err := s.members.ListPlayersBySeasonIDs(seasonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot season players: %w", err)
	}
	seenPlayers := make(map[uint64]bool)
	for _, row := range playerRows {
		if seenPlayers[row.PlayerID] {
			continue
		}
		seenPlayers[row.PlayerID] = true

		outside, err := s.members.CountPlayerMembershipsOutside(row.PlayerID, seasonIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check player %d cross-membership: %w", row.PlayerID, err)
		}
		if outside == 0 {
			snap.doomedPlayerIDs = append(snap.doomedPlayerIDs, row.PlayerID)
		} else {
			snap.survivorPlayerIDs = append(snap.survivorPlayerIDs, row.PlayerID)
		}
	}

	return snap, nil
}

// applySeasonSet executes the dependent cleanup for a snapshot. Dependent
// failures are logged and skipped; only the purge of the season-scoped join
// rows is fatal, since leaving them behind would orphan the deleted seasons.
func (s *CascadeService) applySeasonSet(snap *seasonSetSnapshot) error {
	for _, clubID := range snap.doomedClubIDs {
		if err := s.members.DeleteClubMemberships(clubID); err != nil {
			log.Printf("cascade: failed to purge memberships of club %d: %v", clubID, err)
			continue
		}
		if err := s.playerRepo.ClearCurrentClubForClubs([]uint64{clubID}); err != nil {
			log.Printf("cascade: failed to clear club pointer for club %d: %v", clubID, err)
		}
		if err := s.clubRepo.Delete(clubID); err != nil {
			log.Printf("cascade: failed to delete club %d: %v", clubID, err)
		}
	}
	if err := s.clubRepo.ClearOriginSeason(snap.survivorClubIDs); err != nil {
		log.Printf("cascade: failed to clear origin season on surviving clubs: %v", err)
	}

	for _, playerID := range snap.doomedPlayerIDs {
		if err := s.members.DeletePlayerMemberships(playerID); err != nil {
			log.Printf("cascade: failed to purge memberships of player %d: %v", playerID, err)
			continue
		}
		if err := s.playerRepo.Delete(playerID); err != nil {
			log.Printf("cascade: failed to delete player %d: %v", playerID, err)
		}
	}
	if err := s.playerRepo.ClearOriginSeason(snap.survivorPlayerIDs); err != nil {
		log.Printf("cascade: failed to clear origin season on surviving players: %v", err)
	}

	if err := s.members.DeleteClubsBySeasonIDs(snap.seasonIDs); err != nil {
		return fmt.Errorf("failed to delete season club rows: %w", err)
	}
	if err := s.members.DeletePlayersBySeasonIDs(snap.seasonIDs); err != nil {
		return fmt.Errorf("failed to delete season player rows: %w", err)
	}
	return nil
}

// DeleteLeague deletes a league, all of its seasons and every join row
// scoped to them. Clubs and players whose last membership lived inside the
// league are hard-deleted; the rest are detached.
func (s *CascadeService) DeleteLeague(leagueID uint64) error {
	if _, err := s.leagueRepo.FindByID(leagueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewNotFound("league not found")
		}
		return fmt.Errorf("failed to find league: %w", err)
	}

	seasonIDs, err := s.seasonRepo.FindIDsByLeague(leagueID)
	if err != nil {
		return fmt.Errorf("failed to list league seasons: %w", err)
	}

	if len(seasonIDs) > 0 {
		snap, err := s.snapshotSeasonSet(seasonIDs)
		if err != nil {
			return err
		}
		if err := s.applySeasonSet(snap); err != nil {
			return err
		}
		if err := s.seasonRepo.DeleteByLeague(leagueID); err != nil {
			return fmt.Errorf("failed to delete league seasons: %w", err)
		}
	}

	if err := s.leagueRepo.Delete(leagueID); err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return nil
}

// DeleteSeason deletes a single season and its join rows, hard-deleting or
// detaching dependents by the same cross-membership rule as DeleteLeague.
func (s *CascadeService) DeleteSeason(seasonID uint64) error {
	if _, err := s.seasonRepo.FindByID(seasonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewNotFound("season not found")
		}
		return fmt.Errorf("failed to find season: %w", err)
	}

	snap, err := s.snapshotSeasonSet([]uint64{seasonID})
	if err != nil {
		return err
	}
	if err := s.applySeasonSet(snap); err != nil {
		return err
	}

	if err := s.seasonRepo.Delete(seasonID); err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	return nil
}

// DeleteClub deletes the club row, then best-effort removes its join rows
// and nulls the club pointer of every player still pointing at it.
func (s *CascadeService) DeleteClub(clubID uint64) error {
	if _, err := s.clubRepo.FindByID(clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewNotFound("club not found")
		}
		return fmt.Errorf("failed to find club: %w", err)
	}

	// Snapshot the club's seasons before the join rows go away, for the
	// removal broadcasts.
	seasonIDs, err := s.members.SeasonIDsForClub(clubID)
	if err != nil {
		log.Printf("cascade: failed to snapshot seasons of club %d: %v", clubID, err)
		seasonIDs = nil
	}

	if err := s.clubRepo.Delete(clubID); err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}

	if err := s.members.DeleteClubMemberships(clubID); err != nil {
		log.Printf("cascade: failed to purge memberships of club %d: %v", clubID, err)
	}
	if err := s.playerRepo.ClearCurrentClubForClubs([]uint64{clubID}); err != nil {
		log.Printf("cascade: failed to clear club pointer for club %d: %v", clubID, err)
	}

	for _, seasonID := range seasonIDs {
		notify(s.notifier, seasonID, realtime.EventClubRemoved, map[string]interface{}{"club_id": clubID})
	}
	return nil
}

// DeletePlayer deletes the player row, then best-effort removes its join rows.
func (s *CascadeService) DeletePlayer(playerID uint64) error {
	if _, err := s.playerRepo.FindByID(playerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewNotFound("player not found")
		}
		return fmt.Errorf("failed to find player: %w", err)
	}

	seasonIDs, err := s.members.SeasonIDsForPlayer(playerID)
	if err != nil {
		log.Printf("cascade: failed to snapshot seasons of player %d: %v", playerID, err)
		seasonIDs = nil
	}

	if err := s.playerRepo.Delete(playerID); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	if err := s.members.DeletePlayerMemberships(playerID); err != nil {
		log.Printf("cascade: failed to purge memberships of player %d: %v", playerID, err)
	}

	for _, seasonID := range seasonIDs {
		notify(s.notifier, seasonID, realtime.EventPlayerRemoved, map[string]interface{}{"player_id": playerID})
	}
	return nil
}
