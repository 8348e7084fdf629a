package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
	"gorm.io/gorm"
)

// LeagueHandler exposes league CRUD; deletion goes through the cascade
// coordinator.
type LeagueHandler struct {
	leagueRepo repository.LeagueRepository
	cascade    *services.CascadeService
}

// NewLeagueHandler creates a new LeagueHandler.
func NewLeagueHandler(leagueRepo repository.LeagueRepository, cascade *services.CascadeService) *LeagueHandler {
	return &LeagueHandler{
		leagueRepo: leagueRepo,
		cascade:    cascade,
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// CreateLeague creates a new league.
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	type CreateLeagueRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	league := &models.League{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := h.leagueRepo.Create(league); err != nil {
		apierrors.InternalError(c, "Failed to create league")
		return
	}

	c.JSON(http.StatusCreated, league)
}

// ListLeagues returns all leagues; active_only=true restricts to active ones.
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	leagues, err := h.leagueRepo.List(activeOnly)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch leagues")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leagues": leagues})
}

// GetLeague returns one league.
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	league, err := h.leagueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "League not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, league)
}

// UpdateLeague updates name, description and active flag.
func (h *LeagueHandler) UpdateLeague(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateLeagueRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}

	var req UpdateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	league, err := h.leagueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "League not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if req.Name != nil {
		league.Name = *req.Name
	}
	if req.Description != nil {
		league.Description = *req.Description
	}
	if req.Active != nil {
		league.Active = *req.Active
	}

	if err := h.leagueRepo.Update(league); err != nil {
		apierrors.InternalError(c, "Failed to update league")
		return
	}

	c.JSON(http.StatusOK, league)
}

// DeleteLeague cascades the deletion of the league, its seasons and their
// memberships.
func (h *LeagueHandler) DeleteLeague(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cascade.DeleteLeague(id); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "League and all its seasons deleted successfully"})
}
