package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/models"
)

// ContactHandler handles the public contact-form endpoint.
type ContactHandler struct {
	messages core.MessageService
	logger   *zap.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(messages core.MessageService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, logger: logger}
}

// SubmitContact handles POST /api/v1/contact. The store write runs under
// the submission budget; a write that outlives it yields 504 rather than a
// hung request.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	id, err := h.messages.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrSubmissionTimeout) {
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Request timed out. Please check your internet connection."})
			return
		}
		h.logger.Error("failed to submit contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, ContactResponse{ID: id})
}
