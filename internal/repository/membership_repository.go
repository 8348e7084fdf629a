package repository

import (
	"github.com/xblade/league-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// AddClub inserts a season-club row, or fetches the existing one when the
// unique (season_id, club_id) index reports a conflict. Concurrent duplicate
// calls converge on a single row.
func (r *GormMembershipRepository) AddClub(sc *models.SeasonClub) (bool, error) {
	res := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "season_id"}, {Name: "club_id"}},
			DoNothing: true,
		}).
		Create(sc)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.FindClub(sc.SeasonID, sc.ClubID)
	if err != nil {
		return false, err
	}
	*sc = *existing
	return false, nil
}

// FindClub finds a specific season-club row
func (r *GormMembershipRepository) FindClub(seasonID, clubID uint64) (*models.SeasonClub, error) {
	var sc models.SeasonClub
	if err := r.db.Where("season_id = ? AND club_id = ?", seasonID, clubID).
		First(&sc).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

// RemoveClub deletes the join row. A missing row is not an error: removed
// reports whether anything was actually deleted.
func (r *GormMembershipRepository) RemoveClub(seasonID, clubID uint64) (bool, error) {
	res := r.db.Where("season_id = ? AND club_id = ?", seasonID, clubID).
		Delete(&models.SeasonClub{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetClubAssigned toggles the assignment flag on an existing join row
func (r *GormMembershipRepository) SetClubAssigned(seasonID, clubID uint64, assigned bool) (bool, error) {
	res := r.db.Model(&models.SeasonClub{}).
		Where("season_id = ? AND club_id = ?", seasonID, clubID).
		Update("assigned", assigned)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListClubs lists season-club rows for a season with their clubs preloaded
func (r *GormMembershipRepository) ListClubs(seasonID uint64, filter AssignmentFilter) ([]models.SeasonClub, error) {
	var rows []models.SeasonClub
	query := r.db.Preload("Club").Where("season_id = ?", seasonID)
	query = applyAssignmentFilter(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListClubsBySeasonIDs lists every season-club row scoped to the given seasons
func (r *GormMembershipRepository) ListClubsBySeasonIDs(seasonIDs []uint64) ([]models.SeasonClub, error) {
	if len(seasonIDs) == 0 {
		return []models.SeasonClub{}, nil
	}
	var rows []models.SeasonClub
	if err := r.db.Where("season_id IN ?", seasonIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountClubMembershipsOutside counts the club's join rows whose season is
// not in the excluded set. Zero means the club has no remaining membership
// anywhere else.
func (r *GormMembershipRepository) CountClubMembershipsOutside(clubID uint64, excludedSeasonIDs []uint64) (int64, error) {
	var count int64
	query := r.db.Model(&models.SeasonClub{}).Where("club_id = ?", clubID)
	if len(excludedSeasonIDs) > 0 {
		query = query.Where("season_id NOT IN ?", excludedSeasonIDs)
	}
	err := query.Count(&count).Error
	return count, err
}

// DeleteClubMemberships removes every join row for the club across all seasons
func (r *GormMembershipRepository) DeleteClubMemberships(clubID uint64) error {
	return r.db.Where("club_id = ?", clubID).Delete(&models.SeasonClub{}).Error
}

// DeleteClubsBySeasonIDs removes every season-club row scoped to the seasons
func (r *GormMembershipRepository) DeleteClubsBySeasonIDs(seasonIDs []uint64) error {
	if len(seasonIDs) == 0 {
		return nil
	}
	return r.db.Where("season_id IN ?", seasonIDs).Delete(&models.SeasonClub{}).Error
}

// AddPlayer inserts a season-player row, or fetches the existing one on a
// unique-index conflict.
func (r *GormMembershipRepository) AddPlayer(sp *models.SeasonPlayer) (bool, error) {
	res := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "season_id"}, {Name: "player_id"}},
			DoNothing: true,
		}).
		Create(sp)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.FindPlayer(sp.SeasonID, sp.PlayerID)
	if err != nil {
		return false, err
	}
	*sp = *existing
	return false, nil
}

// FindPlayer finds a specific season-player row
func (r *GormMembershipRepository) FindPlayer(seasonID, playerID uint64) (*models.SeasonPlayer, error) {
	var sp models.SeasonPlayer
	if err := r.db.Where("season_id = ? AND player_id = ?", seasonID, playerID).
		First(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

// RemovePlayer deletes the join row; removed reports whether it existed
func (r *GormMembershipRepository) RemovePlayer(seasonID, playerID uint64) (bool, error) {
	res := r.db.Where("season_id = ? AND player_id = ?", seasonID, playerID).
		Delete(&models.SeasonPlayer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetPlayerAssigned toggles the assignment flag on an existing join row
func (r *GormMembershipRepository) SetPlayerAssigned(seasonID, playerID uint64, assigned bool) (bool, error) {
	res := r.db.Model(&models.SeasonPlayer{}).
		Where("season_id = ? AND player_id = ?", seasonID, playerID).
		Update("assigned", assigned)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListPlayers lists season-player rows with players and their current clubs
func (r *GormMembershipRepository) ListPlayers(seasonID uint64, filter AssignmentFilter) ([]models.SeasonPlayer, error) {
	var rows []models.SeasonPlayer
	query := r.db.Preload("Player").Preload("Player.CurrentClub").
		Where("season_id = ?", seasonID)
	query = applyAssignmentFilter(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPlayersBySeasonIDs lists every season-player row scoped to the seasons
func (r *GormMembershipRepository) ListPlayersBySeasonIDs(seasonIDs []uint64) ([]models.SeasonPlayer, error) {
	if len(seasonIDs) == 0 {
		return []models.SeasonPlayer{}, nil
	}
	var rows []models.SeasonPlayer
	if err := r.db.Where("season_id IN ?", seasonIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPlayerMembershipsOutside counts the player's join rows outside the
// excluded season set
func (r *GormMembershipRepository) CountPlayerMembershipsOutside(playerID uint64, excludedSeasonIDs []uint64) (int64, error) {
	var count int64
	query := r.db.Model(&models.SeasonPlayer{}).Where("player_id = ?", playerID)
	if len(excludedSeasonIDs) > 0 {
		query = query.Where("season_id NOT IN ?", excludedSeasonIDs)
	}
	err := query.Count(&count).Error
	return count, err
}

// DeletePlayerMemberships removes every join row for the player
func (r *GormMembershipRepository) DeletePlayerMemberships(playerID uint64) error {
	return r.db.Where("player_id = ?", playerID).Delete(&models.SeasonPlayer{}).Error
}

// DeletePlayersBySeasonIDs removes every season-player row scoped to the seasons
func (r *GormMembershipRepository) DeletePlayersBySeasonIDs(seasonIDs []uint64) error {
	if len(seasonIDs) == 0 {
		return nil
	}
	return r.db.Where("season_id IN ?", seasonIDs).Delete(&models.SeasonPlayer{}).Error
}

// SeasonIDsForClub returns the ids of every season the club belongs to
func (r *GormMembershipRepository) SeasonIDsForClub(clubID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.SeasonClub{}).
		Where("club_id = ?", clubID).
		Pluck("season_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SeasonIDsForPlayer returns the ids of every season the player belongs to
func (r *GormMembershipRepository) SeasonIDsForPlayer(playerID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.SeasonPlayer{}).
		Where("player_id = ?", playerID).
		Pluck("season_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func applyAssignmentFilter(query *gorm.DB, filter AssignmentFilter) *gorm.DB {
	switch filter {
	case FilterAssigned:
		return query.Where("assigned = ?", true)
	case FilterUnassigned:
		return query.Where("assigned = ?", false)
	default:
		return query
	}
}
