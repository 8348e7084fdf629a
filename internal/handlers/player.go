package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
	"github.com/xblade/league-api/internal/utils"
	"gorm.io/gorm"
)

// PlayerHandler exposes player CRUD; deletion goes through the cascade
// coordinator.
type PlayerHandler struct {
	playerRepo repository.PlayerRepository
	cascade    *services.CascadeService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(playerRepo repository.PlayerRepository, cascade *services.CascadeService) *PlayerHandler {
	return &PlayerHandler{
		playerRepo: playerRepo,
		cascade:    cascade,
	}
}

// CreatePlayer creates a free-agent player with no origin season.
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	type CreatePlayerRequest struct {
		Name         string `json:"name" binding:"required"`
		Position     string `json:"position"`
		JerseyNumber *int   `json:"jersey_number"`
	}

	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	player := &models.Player{
		Name:         req.Name,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
		Active:       true,
	}
	if err := h.playerRepo.Create(player); err != nil {
		apierrors.InternalError(c, "Failed to create player")
		return
	}

	c.JSON(http.StatusCreated, player)
}

// ListPlayers returns a page of players sorted by name.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"
	params := utils.GetPaginationParams(c)

	players, total, err := h.playerRepo.ListPaged(activeOnly, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch players")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"players": players,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetPlayer returns one player with the current club preloaded.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	player, err := h.playerRepo.FindByID(id, "CurrentClub")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Player not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, player)
}

// UpdatePlayer updates player fields. The current-club pointer is managed
// by the roster endpoints, not here.
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdatePlayerRequest struct {
		Name         *string `json:"name"`
		Position     *string `json:"position"`
		JerseyNumber *int    `json:"jersey_number"`
		Active       *bool   `json:"active"`
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	player, err := h.playerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Player not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Position != nil {
		player.Position = *req.Position
	}
	if req.JerseyNumber != nil {
		player.JerseyNumber = req.JerseyNumber
	}
	if req.Active != nil {
		player.Active = *req.Active
	}

	if err := h.playerRepo.Update(player); err != nil {
		apierrors.InternalError(c, "Failed to update player")
		return
	}

	c.JSON(http.StatusOK, player)
}

// DeletePlayer deletes the player and its memberships.
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cascade.DeletePlayer(id); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully"})
}
