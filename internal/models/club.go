package models

import "time"

// Club keeps the season it was created in via OriginSeasonID. The origin
// season scopes the "available for season" pool and is cleared (not
// cascaded) when the club survives a season deletion through membership in
// another season.
type Club struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_clubs_origin_name,priority:2" json:"name"`
	WebURL         string    `gorm:"type:varchar(512)" json:"web_url"`
	Description    string    `gorm:"type:text" json:"description"`
	OriginSeasonID *uint64   `gorm:"uniqueIndex:idx_clubs_origin_name,priority:1" json:"origin_season_id"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Memberships []SeasonClub `gorm:"foreignKey:ClubID" json:"memberships,omitempty"`
	Players     []Player     `gorm:"foreignKey:CurrentClubID" json:"players,omitempty"`
}
