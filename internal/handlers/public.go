package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xblade/league-api/internal/dto"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
)

// PublicHandler serves the unauthenticated projections. Public views only
// show active entities and assigned memberships; unassigned rows exist but
// are hidden here.
type PublicHandler struct {
	leagueRepo repository.LeagueRepository
	seasonRepo repository.SeasonRepository
	clubRepo   repository.ClubRepository
	playerRepo repository.PlayerRepository
	membership *services.MembershipService
	roster     *services.RosterService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(
	leagueRepo repository.LeagueRepository,
	seasonRepo repository.SeasonRepository,
	clubRepo repository.ClubRepository,
	playerRepo repository.PlayerRepository,
	membership *services.MembershipService,
	roster *services.RosterService,
) *PublicHandler {
	return &PublicHandler{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		membership: membership,
		roster:     roster,
	}
}

// ListLeagues returns active leagues.
func (h *PublicHandler) ListLeagues(c *gin.Context) {
	leagues, err := h.leagueRepo.List(true)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leagues": leagues})
}

// ListLeagueSeasons returns the league's active seasons.
func (h *PublicHandler) ListLeagueSeasons(c *gin.Context) {
	leagueID, ok := parseIDParam(c, "leagueId")
	if !ok {
		return
	}

	seasons, err := h.seasonRepo.List(&leagueID, true)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// ListClubs returns all active clubs.
func (h *PublicHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubRepo.List(true)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

// ListPlayers returns active players, optionally filtered by current club.
func (h *PublicHandler) ListPlayers(c *gin.Context) {
	var clubID *uint64
	if raw := c.Query("club_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid club_id")
			return
		}
		clubID = &id
	}

	players, err := h.playerRepo.List(true, clubID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

// ListSeasonClubs returns only the season's assigned clubs.
func (h *PublicHandler) ListSeasonClubs(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	views, err := h.membership.ListClubMembers(seasonID, repository.FilterAssigned)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	clubs := make([]models.Club, 0, len(views))
	for _, v := range views {
		clubs = append(clubs, v.Club)
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

// SeasonRoster returns the public roster: assigned players grouped by
// club, hiding players whose club is not an assigned season member. Free
// agents stay visible.
func (h *PublicHandler) SeasonRoster(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	roster, err := h.roster.AssignedRoster(seasonID, true)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRosterDTO(*roster))
}

// ListSeasonPlayers returns the season's assigned players that are either
// free agents or belong to an assigned club.
func (h *PublicHandler) ListSeasonPlayers(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	roster, err := h.roster.AssignedRoster(seasonID, true)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	players := make([]models.Player, 0)
	for _, group := range roster.Clubs {
		players = append(players, group.Players...)
	}
	players = append(players, roster.FreeAgents...)

	c.JSON(http.StatusOK, gin.H{"players": players})
}
