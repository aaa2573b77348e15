package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/middleware"
)

// SessionHandler handles the sign-in landing and sign-out endpoints.
type SessionHandler struct {
	profiles core.ProfileService
	verifier *identity.Verifier
	sessions *identity.Broadcaster
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(profiles core.ProfileService, verifier *identity.Verifier, sessions *identity.Broadcaster, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{profiles: profiles, verifier: verifier, sessions: sessions, logger: logger}
}

// InitSession handles POST /api/v1/session. Clients call it once after a
// Firebase sign-in: the profile mirror is upserted and the identity change
// is broadcast. 201 on first sign-in, 200 afterwards.
func (h *SessionHandler) InitSession(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	profile, created, err := h.profiles.EnsureProfile(c.Request.Context(), ident)
	if err != nil {
		h.logger.Error("failed to initialize session", zap.String("uid", ident.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize session", Details: err.Error()})
		return
	}

	h.sessions.Publish(ident.UID, ident)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, SessionResponse{Identity: ident, Profile: profile, Created: created})
}

// EndSession handles DELETE /api/v1/session: refresh tokens are revoked
// and the sign-out is broadcast so the user's live streams shut down.
func (h *SessionHandler) EndSession(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.verifier.Revoke(c.Request.Context(), ident.UID); err != nil {
		h.logger.Error("failed to revoke session", zap.String("uid", ident.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Sign-out failed", Details: err.Error()})
		return
	}

	h.sessions.Publish(ident.UID, nil)
	c.Status(http.StatusNoContent)
}

// GetCurrentUserProfile handles GET /api/v1/users/me.
func (h *SessionHandler) GetCurrentUserProfile(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	profile, err := h.profiles.GetByUID(c.Request.Context(), ident.UID)
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		h.logger.Error("failed to load profile", zap.String("uid", ident.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user profile", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
