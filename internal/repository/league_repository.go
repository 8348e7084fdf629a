package repository

import (
	"github.com/xblade/league-api/internal/database"
	"github.com/xblade/league-api/internal/models"
	"gorm.io/gorm"
)

// GormLeagueRepository is a GORM implementation of LeagueRepository
type GormLeagueRepository struct {
	db *gorm.DB
}

// NewLeagueRepository creates a new LeagueRepository
func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &GormLeagueRepository{db: db}
}

// Create creates a new league
func (r *GormLeagueRepository) Create(league *models.League) error {
	return r.db.Create(league).Error
}

// FindByID finds a league by ID
func (r *GormLeagueRepository) FindByID(id uint64) (*models.League, error) {
	var league models.League
	if err := r.db.First(&league, id).Error; err != nil {
		return nil, err
	}
	return &league, nil
}

// List retrieves leagues, newest first
func (r *GormLeagueRepository) List(activeOnly bool) ([]models.League, error) {
	var leagues []models.League
	query := r.db.Order("created_at DESC")
	if activeOnly {
		query = query.Scopes(database.ActiveOnly)
	}
	if err := query.Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}

// Update updates a league
func (r *GormLeagueRepository) Update(league *models.League) error {
	return r.db.Save(league).Error
}

// Delete removes the league row
func (r *GormLeagueRepository) Delete(id uint64) error {
	return r.db.Delete(&models.League{}, id).Error
}
