package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/xblade/league-api/internal/errors"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/repository"
	"github.com/xblade/league-api/internal/services"
	"gorm.io/gorm"
)

// ClubHandler exposes club CRUD; deletion goes through the cascade
// coordinator.
type ClubHandler struct {
	clubRepo repository.ClubRepository
	cascade  *services.CascadeService
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(clubRepo repository.ClubRepository, cascade *services.CascadeService) *ClubHandler {
	return &ClubHandler{
		clubRepo: clubRepo,
		cascade:  cascade,
	}
}

// CreateClub creates a club with no origin season.
func (h *ClubHandler) CreateClub(c *gin.Context) {
	type CreateClubRequest struct {
		Name        string `json:"name" binding:"required"`
		WebURL      string `json:"web_url"`
		Description string `json:"description"`
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	club := &models.Club{
		Name:        req.Name,
		WebURL:      req.WebURL,
		Description: req.Description,
		Active:      true,
	}
	if err := h.clubRepo.Create(club); err != nil {
		apierrors.InternalError(c, "Failed to create club")
		return
	}

	c.JSON(http.StatusCreated, club)
}

// ListClubs returns clubs sorted by name.
func (h *ClubHandler) ListClubs(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	clubs, err := h.clubRepo.List(activeOnly)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch clubs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

// GetClub returns one club.
func (h *ClubHandler) GetClub(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	club, err := h.clubRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Club not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, club)
}

// UpdateClub updates club fields.
func (h *ClubHandler) UpdateClub(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateClubRequest struct {
		Name        *string `json:"name"`
		WebURL      *string `json:"web_url"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	club, err := h.clubRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Club not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.WebURL != nil {
		club.WebURL = *req.WebURL
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Active != nil {
		club.Active = *req.Active
	}

	if err := h.clubRepo.Update(club); err != nil {
		apierrors.InternalError(c, "Failed to update club")
		return
	}

	c.JSON(http.StatusOK, club)
}

// DeleteClub deletes the club, its memberships and clears roster pointers.
func (h *ClubHandler) DeleteClub(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cascade.DeleteClub(id); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted successfully"})
}
