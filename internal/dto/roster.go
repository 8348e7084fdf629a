package dto

import (
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/services"
)

// RosterGroupDTO is one club's bucket in the grouped roster view.
type RosterGroupDTO struct {
	Club    models.Club     `json:"club"`
	Players []models.Player `json:"players"`
}

// RosterDTO is the season roster grouped by current club, free agents last.
type RosterDTO struct {
	Clubs      []RosterGroupDTO `json:"clubs"`
	FreeAgents []models.Player  `json:"free_agents"`
}

// ToRosterDTO converts a grouped roster.
func ToRosterDTO(roster services.GroupedRoster) RosterDTO {
	groups := make([]RosterGroupDTO, len(roster.Clubs))
	for i, g := range roster.Clubs {
		groups[i] = RosterGroupDTO{Club: g.Club, Players: g.Players}
	}
	return RosterDTO{
		Clubs:      groups,
		FreeAgents: roster.FreeAgents,
	}
}
