package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Season lookups
		{"seasons", "idx_seasons_league_id", "league_id"},
		{"seasons", "idx_seasons_active", "active"},

		// Membership lookups by either side of the join
		{"season_clubs", "idx_season_clubs_season_id", "season_id"},
		{"season_clubs", "idx_season_clubs_club_id", "club_id"},
		{"season_players", "idx_season_players_season_id", "season_id"},
		{"season_players", "idx_season_players_player_id", "player_id"},

		// Roster grouping and origin-season pools
		{"players", "idx_players_current_club_id", "current_club_id"},
		{"players", "idx_players_origin_season_id", "origin_season_id"},
		{"clubs", "idx_clubs_origin_season_id", "origin_season_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
