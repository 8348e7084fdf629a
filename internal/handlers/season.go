package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
	"gorm.io/gorm"
)

// SeasonHandler exposes season CRUD; deletion goes through the cascade
// coordinator.
type SeasonHandler struct {
	seasonRepo repository.SeasonRepository
	leagueRepo repository.LeagueRepository
	cascade    *services.CascadeService
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(seasonRepo repository.SeasonRepository, leagueRepo repository.LeagueRepository, cascade *services.CascadeService) *SeasonHandler {
	return &SeasonHandler{
		seasonRepo: seasonRepo,
		leagueRepo: leagueRepo,
		cascade:    cascade,
	}
}

// CreateSeason creates a season inside an existing league.
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	type CreateSeasonRequest struct {
		LeagueID    uint64     `json:"league_id" binding:"required"`
		Name        string     `json:"name" binding:"required"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Description string     `json:"description"`
	}

	var req CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if _, err := h.leagueRepo.FindByID(req.LeagueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.RespondWithDomainError(c, apierrors.NewDependency("league_id", "league %d does not exist", req.LeagueID))
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	season := &models.Season{
		LeagueID:    req.LeagueID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		Active:      true,
	}
	if err := h.seasonRepo.Create(season); err != nil {
		apierrors.InternalError(c, "Failed to create season")
		return
	}

	c.JSON(http.StatusCreated, season)
}

// ListSeasons returns seasons, optionally restricted to one league.
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	var leagueID *uint64
	if raw := c.Query("league_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid league_id")
			return
		}
		leagueID = &id
	}
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	seasons, err := h.seasonRepo.List(leagueID, activeOnly)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch seasons")
		return
	}

	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// GetSeason returns one season with its league preloaded.
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	season, err := h.seasonRepo.FindByID(id, "League")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Season not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, season)
}

// UpdateSeason updates season fields.
func (h *SeasonHandler) UpdateSeason(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateSeasonRequest struct {
		Name        *string    `json:"name"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Description *string    `json:"description"`
		Active      *bool      `json:"active"`
	}

	var req UpdateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	season, err := h.seasonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Season not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if req.Name != nil {
		season.Name = *req.Name
	}
	if req.StartDate != nil {
		season.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		season.EndDate = req.EndDate
	}
	if req.Description != nil {
		season.Description = *req.Description
	}
	if req.Active != nil {
		season.Active = *req.Active
	}

	if err := h.seasonRepo.Update(season); err != nil {
		apierrors.InternalError(c, "Failed to update season")
		return
	}

	c.JSON(http.StatusOK, season)
}

// DeleteSeason cascades the deletion of the season and its memberships.
func (h *SeasonHandler) DeleteSeason(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cascade.DeleteSeason(id); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Season and all its associations deleted successfully"})
}
