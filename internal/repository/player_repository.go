package repository

import (
	"github.com/xblade/league-api/internal/database"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlayerRepository is a GORM implementation of PlayerRepository
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &GormPlayerRepository{db: db}
}

// Create creates a new player
func (r *GormPlayerRepository) Create(player *models.Player) error {
	return r.db.Create(player).Error
}

// FindOrCreate inserts the player, or loads the existing row into player
// when the unique (origin_season_id, name) index reports a conflict.
// Concurrent duplicate calls converge on a single player.
func (r *GormPlayerRepository) FindOrCreate(player *models.Player) (bool, error) {
	res := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "origin_season_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(player)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing models.Player
	if err := r.db.
		Where("origin_season_id = ? AND name = ?", player.OriginSeasonID, player.Name).
		First(&existing).Error; err != nil {
		return false, err
	}
	*player = existing
	return false, nil
}

// FindByID finds a player by ID with optional preloading
func (r *GormPlayerRepository) FindByID(id uint64, preload ...string) (*models.Player, error) {
	var player models.Player
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&player, id).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// FindByIDs finds all players matching the given ids
func (r *GormPlayerRepository) FindByIDs(ids []uint64) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	var players []models.Player
	if err := r.db.Where("id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// List retrieves players sorted by name, optionally filtered by current club
func (r *GormPlayerRepository) List(activeOnly bool, currentClubID *uint64) ([]models.Player, error) {
	var players []models.Player
	query := r.db.Preload("CurrentClub").Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if currentClubID != nil {
		query = query.Where("current_club_id = ?", *currentClubID)
	}
	if err := query.Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// ListPaged retrieves players page by page, returning the total count
func (r *GormPlayerRepository) ListPaged(activeOnly bool, params utils.PaginationParams) ([]models.Player, int64, error) {
	query := r.db.Model(&models.Player{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var players []models.Player
	if err := query.Preload("CurrentClub").
		Order("name ASC").
		Scopes(database.Paginate(params)).
		Find(&players).Error; err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

// Update updates a player
func (r *GormPlayerRepository) Update(player *models.Player) error {
	return r.db.Save(player).Error
}

// Delete removes the player row
func (r *GormPlayerRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Player{}, id).Error
}

// DeleteByIDs removes all players matching the given ids
func (r *GormPlayerRepository) DeleteByIDs(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Player{}).Error
}

// ListAvailableForSeason returns active players originated in the season
// with no membership row for it, plus current members whose assignment flag
// is off
func (r *GormPlayerRepository) ListAvailableForSeason(seasonID uint64) ([]models.Player, error) {
	joined := r.db.Model(&models.SeasonPlayer{}).
		Select("player_id").
		Where("season_id = ?", seasonID)
	unassigned := r.db.Model(&models.SeasonPlayer{}).
		Select("player_id").
		Where("season_id = ? AND assigned = ?", seasonID, false)

	var players []models.Player
	if err := r.db.Preload("CurrentClub").
		Where(r.db.
			Where("origin_season_id = ?", seasonID).
			Where("active = ?", true).
			Where("id NOT IN (?)", joined)).
		Or("id IN (?)", unassigned).
		Order("name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// ClearOriginSeason nulls origin_season_id on the given players
func (r *GormPlayerRepository) ClearOriginSeason(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Player{}).
		Where("id IN ?", ids).
		Update("origin_season_id", nil).Error
}

// SetCurrentClub updates the player's club pointer; nil means free agent
func (r *GormPlayerRepository) SetCurrentClub(playerID uint64, clubID *uint64) error {
	return r.db.Model(&models.Player{}).
		Where("id = ?", playerID).
		Update("current_club_id", clubID).Error
}

// ClearCurrentClubForClubs nulls current_club_id on players pointing at the clubs
func (r *GormPlayerRepository) ClearCurrentClubForClubs(clubIDs []uint64) error {
	if len(clubIDs) == 0 {
		return nil
	}
	return r.db.Model(&models.Player{}).
		Where("current_club_id IN ?", clubIDs).
		Update("current_club_id", nil).Error
}
