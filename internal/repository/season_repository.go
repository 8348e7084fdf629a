package repository

import (
	"github.com/xblade/league-api/internal/models"
	"gorm.io/gorm"
)

// GormSeasonRepository is a GORM implementation of SeasonRepository
type GormSeasonRepository struct {
	db *gorm.DB
}

// NewSeasonRepository creates a new SeasonRepository
func NewSeasonRepository(db *gorm.DB) SeasonRepository {
	return &GormSeasonRepository{db: db}
}

// Create creates a new season
func (r *GormSeasonRepository) Create(season *models.Season) error {
	return r.db.Create(season).Error
}

// FindByID finds a season by ID with optional preloading
func (r *GormSeasonRepository) FindByID(id uint64, preload ...string) (*models.Season, error) {
	var season models.Season
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&season, id).Error; err != nil {
		return nil, err
	}
	return &season, nil
}

// List retrieves seasons, optionally scoped to a league, newest start first
func (r *GormSeasonRepository) List(leagueID *uint64, activeOnly bool) ([]models.Season, error) {
	var seasons []models.Season
	query := r.db.Preload("League").Order("start_date DESC")
	if leagueID != nil {
		query = query.Where("league_id = ?", *leagueID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// Update updates a season
func (r *GormSeasonRepository) Update(season *models.Season) error {
	return r.db.Save(season).Error
}

// Delete removes the season row
func (r *GormSeasonRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Season{}, id).Error
}

// FindIDsByLeague returns the ids of every season in the league
func (r *GormSeasonRepository) FindIDsByLeague(leagueID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.Season{}).
		Where("league_id = ?", leagueID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByLeague removes every season row belonging to the league
func (r *GormSeasonRepository) DeleteByLeague(leagueID uint64) error {
	return r.db.Where("league_id = ?", leagueID).Delete(&models.Season{}).Error
}
