package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xblade/league-api/internal/dto"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
)

// RosterHandler exposes the season-management surface: membership rows,
// assignment toggles, create-and-add and the roster views.
type RosterHandler struct {
	membership *services.MembershipService
	roster     *services.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(membership *services.MembershipService, roster *services.RosterService) *RosterHandler {
	return &RosterHandler{
		membership: membership,
		roster:     roster,
	}
}

// assignmentFilter maps the ?assigned= query parameter onto a row filter.
// Absent means all rows, matching the admin view.
func assignmentFilter(c *gin.Context) repository.AssignmentFilter {
	switch c.Query("assigned") {
	case "true":
		return repository.FilterAssigned
	case "false":
		return repository.FilterUnassigned
	default:
		return repository.FilterAll
	}
}

// CreateClubInSeason creates a club and joins it to the season in one call.
func (h *RosterHandler) CreateClubInSeason(c *gin.Context) {
	type CreateClubRequest struct {
		SeasonID    uint64 `json:"season_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		WebURL      string `json:"web_url"`
		Description string `json:"description"`
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	club, sc, err := h.membership.CreateClubAndAdd(req.SeasonID, services.CreateClubInput{
		Name:        req.Name,
		WebURL:      req.WebURL,
		Description: req.Description,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"club": club,
		"membership": dto.MembershipResultDTO{
			SeasonID: sc.SeasonID,
			Created:  true,
			Assigned: sc.Assigned,
			ID:       sc.ID,
		},
	})
}

// CreatePlayerInSeason creates a free-agent player and joins it to the season.
func (h *RosterHandler) CreatePlayerInSeason(c *gin.Context) {
	type CreatePlayerRequest struct {
		SeasonID     uint64 `json:"season_id" binding:"required"`
		Name         string `json:"name" binding:"required"`
		Position     string `json:"position"`
		JerseyNumber *int   `json:"jersey_number"`
	}

	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	player, sp, err := h.membership.CreatePlayerAndAdd(req.SeasonID, services.CreatePlayerInput{
		Name:         req.Name,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"player": player,
		"membership": dto.MembershipResultDTO{
			SeasonID: sp.SeasonID,
			Created:  true,
			Assigned: sp.Assigned,
			ID:       sp.ID,
		},
	})
}

// AddClubToSeason joins an existing club to a season. A duplicate call
// returns the existing membership with created=false instead of failing.
func (h *RosterHandler) AddClubToSeason(c *gin.Context) {
	type AddClubRequest struct {
		SeasonID uint64 `json:"season_id" binding:"required"`
		ClubID   uint64 `json:"club_id" binding:"required"`
	}

	var req AddClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	sc, created, err := h.membership.AddClub(req.SeasonID, req.ClubID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.MembershipResultDTO{
		SeasonID: sc.SeasonID,
		Created:  created,
		Assigned: sc.Assigned,
		ID:       sc.ID,
	})
}

// RemoveClubFromSeason removes a club's membership. Removing an absent
// membership still reports success so double-submits stay quiet.
func (h *RosterHandler) RemoveClubFromSeason(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}
	clubID, ok := parseIDParam(c, "clubId")
	if !ok {
		return
	}

	alreadyAbsent, err := h.membership.RemoveClub(seasonID, clubID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"already_absent": alreadyAbsent})
}

// ListSeasonClubs lists a season's club memberships, filterable by the
// assigned flag.
func (h *RosterHandler) ListSeasonClubs(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	views, err := h.membership.ListClubMembers(seasonID, assignmentFilter(c))
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": dto.ToClubMemberDTOs(views)})
}

// ListAvailableClubs lists the clubs still pickable for the season:
// unjoined origin-season clubs plus members with the assignment flag off.
func (h *RosterHandler) ListAvailableClubs(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	clubs, err := h.membership.ListAvailableClubs(seasonID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

// UpdateClubAssignment toggles the assigned flag on a club membership.
func (h *RosterHandler) UpdateClubAssignment(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}
	clubID, ok := parseIDParam(c, "clubId")
	if !ok {
		return
	}

	type AssignmentRequest struct {
		Assigned *bool `json:"assigned" binding:"required"`
	}

	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	view, err := h.membership.SetClubAssignment(seasonID, clubID, *req.Assigned)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClubMemberDTO(*view))
}

// AddPlayerToSeason joins an existing player to a season.
func (h *RosterHandler) AddPlayerToSeason(c *gin.Context) {
	type AddPlayerRequest struct {
		SeasonID uint64 `json:"season_id" binding:"required"`
		PlayerID uint64 `json:"player_id" binding:"required"`
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	sp, created, err := h.membership.AddPlayer(req.SeasonID, req.PlayerID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.MembershipResultDTO{
		SeasonID: sp.SeasonID,
		Created:  created,
		Assigned: sp.Assigned,
		ID:       sp.ID,
	})
}

// RemovePlayerFromSeason removes a player's membership, idempotently.
func (h *RosterHandler) RemovePlayerFromSeason(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	alreadyAbsent, err := h.membership.RemovePlayer(seasonID, playerID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"already_absent": alreadyAbsent})
}

// ListSeasonPlayers lists a season's player memberships with current clubs.
func (h *RosterHandler) ListSeasonPlayers(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	views, err := h.membership.ListPlayerMembers(seasonID, assignmentFilter(c))
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": dto.ToPlayerMemberDTOs(views)})
}

// ListAvailablePlayers lists the players still pickable for the season:
// unjoined origin-season players plus members with the assignment flag off.
func (h *RosterHandler) ListAvailablePlayers(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	players, err := h.membership.ListAvailablePlayers(seasonID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}

// UpdatePlayerAssignment toggles the assigned flag on a player membership.
func (h *RosterHandler) UpdatePlayerAssignment(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	type AssignmentRequest struct {
		Assigned *bool `json:"assigned" binding:"required"`
	}

	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	view, err := h.membership.SetPlayerAssignment(seasonID, playerID, *req.Assigned)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlayerMemberDTO(*view))
}

// UpdatePlayerClub points a player at a club, or clears the pointer when
// the body carries any of the "no club" sentinels.
func (h *RosterHandler) UpdatePlayerClub(c *gin.Context) {
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	type UpdateClubRequest struct {
		CurrentClub *string `json:"current_club"`
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	player, err := h.roster.AssignPlayerClub(playerID, req.CurrentClub)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// SeasonRoster returns the admin roster view: assigned players grouped by
// current club, with a free-agents bucket.
func (h *RosterHandler) SeasonRoster(c *gin.Context) {
	seasonID, ok := parseIDParam(c, "seasonId")
	if !ok {
		return
	}

	roster, err := h.roster.AssignedRoster(seasonID, false)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRosterDTO(*roster))
}
