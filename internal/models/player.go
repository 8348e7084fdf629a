package models

import "time"

// Player.CurrentClubID is deliberately independent of season membership: a
// player can point at a club without sharing a season with it. Nil means
// free agent.
type Player struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_players_origin_name,priority:2" json:"name"`
	Position       string    `gorm:"type:varchar(50)" json:"position"`
	JerseyNumber   *int      `json:"jersey_number"`
	CurrentClubID  *uint64   `gorm:"index" json:"current_club_id"`
	OriginSeasonID *uint64   `gorm:"uniqueIndex:idx_players_origin_name,priority:1" json:"origin_season_id"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	CurrentClub *Club          `gorm:"foreignKey:CurrentClubID" json:"current_club,omitempty"`
	Memberships []SeasonPlayer `gorm:"foreignKey:PlayerID" json:"memberships,omitempty"`
}
