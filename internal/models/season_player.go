package models

import "time"

type SeasonPlayer struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	SeasonID  uint64    `gorm:"not null;uniqueIndex:idx_season_players_season_player" json:"season_id"`
	PlayerID  uint64    `gorm:"not null;uniqueIndex:idx_season_players_season_player" json:"player_id"`
	Assigned  bool      `gorm:"not null;default:true" json:"assigned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Season Season `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	Player Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
}
