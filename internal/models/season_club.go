package models

import "time"

// SeasonClub links a club to a season. The row existing at all makes the
// club a member; Assigned only controls visibility in public views.
type SeasonClub struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	SeasonID  uint64    `gorm:"not null;uniqueIndex:idx_season_clubs_season_club" json:"season_id"`
	ClubID    uint64    `gorm:"not null;uniqueIndex:idx_season_clubs_season_club" json:"club_id"`
	Assigned  bool      `gorm:"not null;default:true" json:"assigned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Season Season `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	Club   Club   `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}
