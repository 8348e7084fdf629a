package models

import "time"

type Season struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	LeagueID    uint64     `gorm:"not null;index" json:"league_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `gorm:"type:text" json:"description"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	League  League         `gorm:"foreignKey:LeagueID" json:"league,omitempty"`
	Clubs   []SeasonClub   `gorm:"foreignKey:SeasonID" json:"clubs,omitempty"`
	Players []SeasonPlayer `gorm:"foreignKey:SeasonID" json:"players,omitempty"`
}
