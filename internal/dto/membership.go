package dto

import (
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/services"
)

// ClubMemberDTO is a club flattened together with its season join row.
type ClubMemberDTO struct {
	models.Club
	Assigned     bool   `json:"assigned"`
	MembershipID uint64 `json:"membership_id"`
}

// PlayerMemberDTO is a player flattened together with its season join row.
type PlayerMemberDTO struct {
	models.Player
	Assigned     bool   `json:"assigned"`
	MembershipID uint64 `json:"membership_id"`
}

// MembershipResultDTO reports the outcome of an add-member call.
type MembershipResultDTO struct {
	SeasonID uint64 `json:"season_id"`
	Created  bool   `json:"created"`
	Assigned bool   `json:"assigned"`
	ID       uint64 `json:"membership_id"`
}

// ToClubMemberDTO converts a club member view.
func ToClubMemberDTO(v services.ClubMemberView) ClubMemberDTO {
	return ClubMemberDTO{
		Club:         v.Club,
		Assigned:     v.Assigned,
		MembershipID: v.MembershipID,
	}
}

// ToClubMemberDTOs converts a list of club member views.
func ToClubMemberDTOs(views []services.ClubMemberView) []ClubMemberDTO {
	dtos := make([]ClubMemberDTO, len(views))
	for i, v := range views {
		dtos[i] = ToClubMemberDTO(v)
	}
	return dtos
}

// ToPlayerMemberDTO converts a player member view.
func ToPlayerMemberDTO(v services.PlayerMemberView) PlayerMemberDTO {
	return PlayerMemberDTO{
		Player:       v.Player,
		Assigned:     v.Assigned,
		MembershipID: v.MembershipID,
	}
}

// ToPlayerMemberDTOs converts a list of player member views.
func ToPlayerMemberDTOs(views []services.PlayerMemberView) []PlayerMemberDTO {
	dtos := make([]PlayerMemberDTO, len(views))
	for i, v := range views {
		dtos[i] = ToPlayerMemberDTO(v)
	}
	return dtos
}
