package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/middleware"
	"portfolio-backend-go/internal/models"
)

// FavoriteHandler handles dashboard favorite endpoints.
type FavoriteHandler struct {
	favorites core.FavoriteService
	logger    *zap.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites core.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// ToggleFavorite handles PUT /api/v1/projects/:projectId/favorite. The
// body carries optional denormalized listing fields used when the toggle
// creates the favorite; they are ignored when it removes one.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Please sign in to save projects to your dashboard"})
		return
	}

	var data models.ProjectData
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
			return
		}
	}

	projectID := c.Param("projectId")
	favorited, err := h.favorites.Toggle(c.Request.Context(), ident, projectID, data)
	if err != nil {
		if errors.Is(err, core.ErrSignInRequired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Please sign in to save projects to your dashboard"})
			return
		}
		h.logger.Error("failed to toggle favorite", zap.String("project", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save favorite"})
		return
	}
	c.JSON(http.StatusOK, FavoriteStatusResponse{ProjectID: projectID, Favorited: favorited})
}

// CheckFavorite handles GET /api/v1/projects/:projectId/favorite.
func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	projectID := c.Param("projectId")
	favorited, err := h.favorites.Check(c.Request.Context(), ident.UID, projectID)
	if err != nil {
		h.logger.Error("failed to check favorite", zap.String("project", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check favorite"})
		return
	}
	c.JSON(http.StatusOK, FavoriteStatusResponse{ProjectID: projectID, Favorited: favorited})
}

// ListFavorites handles GET /api/v1/favorites, the dashboard view: the
// viewer's saved projects, most recently saved first.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	favorites, err := h.favorites.ListForUser(c.Request.Context(), ident.UID)
	if err != nil {
		h.logger.Error("failed to list favorites", zap.String("uid", ident.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load favorites"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}
