package repository

import (
	"github.com/xblade/league-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClubRepository is a GORM implementation of ClubRepository
type GormClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &GormClubRepository{db: db}
}

// Create creates a new club
func (r *GormClubRepository) Create(club *models.Club) error {
	return r.db.Create(club).Error
}

// FindOrCreate inserts the club, or loads the existing row into club when
// the unique (origin_season_id, name) index reports a conflict. Concurrent
// duplicate calls converge on a single club.
func (r *GormClubRepository) FindOrCreate(club *models.Club) (bool, error) {
	res := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "origin_season_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(club)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing models.Club
	if err := r.db.
		Where("origin_season_id = ? AND name = ?", club.OriginSeasonID, club.Name).
		First(&existing).Error; err != nil {
		return false, err
	}
	*club = existing
	return false, nil
}

// FindByID finds a club by ID
func (r *GormClubRepository) FindByID(id uint64) (*models.Club, error) {
	var club models.Club
	if err := r.db.First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// FindByIDs finds all clubs matching the given ids
func (r *GormClubRepository) FindByIDs(ids []uint64) ([]models.Club, error) {
	if len(ids) == 0 {
		return []models.Club{}, nil
	}
	var clubs []models.Club
	if err := r.db.Where("id IN ?", ids).Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// List retrieves clubs sorted by name
func (r *GormClubRepository) List(activeOnly bool) ([]models.Club, error) {
	var clubs []models.Club
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// Update updates a club
func (r *GormClubRepository) Update(club *models.Club) error {
	return r.db.Save(club).Error
}

// Delete removes the club row
func (r *GormClubRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Club{}, id).Error
}

// DeleteByIDs removes all clubs matching the given ids
func (r *GormClubRepository) DeleteByIDs(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Club{}).Error
}

// ListAvailableForSeason returns the clubs an admin can still pick for the
// season: active clubs originated in it with no membership row yet, plus
// current members whose assignment flag is off. Availability is scoped to
// the season's own pool, not all clubs globally.
func (r *GormClubRepository) ListAvailableForSeason(seasonID uint64) ([]models.Club, error) {
	joined := r.db.Model(&models.SeasonClub{}).
		Select("club_id").
		Where("season_id = ?", seasonID)
	unassigned := r.db.Model(&models.SeasonClub{}).
		Select("club_id").
		Where("season_id = ? AND assigned = ?", seasonID, false)

	var clubs []models.Club
	if err := r.db.
		Where(r.db.
			Where("origin_season_id = ?", seasonID).
			Where("active = ?", true).
			Where("id NOT IN (?)", joined)).
		Or("id IN (?)", unassigned).
		Order("name ASC").
		Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// ClearOriginSeason nulls origin_season_id on the given clubs
func (r *GormClubRepository) ClearOriginSeason(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Club{}).
		Where("id IN ?", ids).
		Update("origin_season_id", nil).Error
}
