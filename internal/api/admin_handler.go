package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/middleware"
)

// AdminHandler handles the moderation views: recent comments across all
// projects and the contact-message inbox. Routes are mounted behind the
// admin gate.
type AdminHandler struct {
	comments core.CommentService
	messages core.MessageService
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(comments core.CommentService, messages core.MessageService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{comments: comments, messages: messages, logger: logger}
}

// RecentComments handles GET /api/v1/admin/comments?limit=N (default 10).
func (h *AdminHandler) RecentComments(c *gin.Context) {
	comments, err := h.comments.Recent(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load comments"})
		return
	}

	ident, _ := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, decorateComments(comments, ident))
}

// Messages handles GET /api/v1/admin/messages?limit=N (default 20).
func (h *AdminHandler) Messages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead handles POST /api/v1/admin/messages/:messageId/read.
// The flip is fire-and-forget; the admin view reloads its list afterwards
// regardless.
func (h *AdminHandler) MarkMessageRead(c *gin.Context) {
	messageID := c.Param("messageId")
	ident, _ := middleware.CurrentIdentity(c)
	h.logger.Info("marking message read", zap.String("message", messageID), zap.String("admin", adminUID(ident)))
	h.messages.MarkRead(c.Request.Context(), messageID)
	c.Status(http.StatusNoContent)
}

func adminUID(ident *identity.Identity) string {
	if ident == nil {
		return ""
	}
	return ident.UID
}

// queryLimit parses the optional limit query parameter; zero means "use
// the service default".
func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
