package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/middleware"
	"portfolio-backend-go/internal/models"
)

// CommentHandler handles comment endpoints, including the live SSE feed.
type CommentHandler struct {
	comments core.CommentService
	sessions *identity.Broadcaster
	logger   *zap.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments core.CommentService, sessions *identity.Broadcaster, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, sessions: sessions, logger: logger}
}

// ListComments handles GET /api/v1/projects/:projectId/comments. Public;
// when a valid token accompanies the request the per-comment canDelete
// affordance is computed for that viewer.
func (h *CommentHandler) ListComments(c *gin.Context) {
	projectID := c.Param("projectId")
	comments, err := h.comments.ListForProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load comments"})
		return
	}

	ident, _ := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, decorateComments(comments, ident))
}

// PostComment handles POST /api/v1/projects/:projectId/comments.
func (h *CommentHandler) PostComment(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Please sign in to post a comment"})
		return
	}

	var req models.PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	comment, err := h.comments.Post(c.Request.Context(), c.Param("projectId"), req.Text, ident)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Comment text cannot be empty"})
		case errors.Is(err, core.ErrSignInRequired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Please sign in to post a comment"})
		default:
			h.logger.Error("failed to post comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to post comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, CommentResponse{Comment: comment, CanDelete: true})
}

// DeleteComment handles DELETE /api/v1/comments/:commentId. Ownership is
// enforced by the service: author or admin only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	err := h.comments.Delete(c.Request.Context(), c.Param("commentId"), ident)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Comment not found"})
		case errors.Is(err, core.ErrNotAllowed):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You may only delete your own comments"})
		default:
			h.logger.Error("failed to delete comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete comment"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamComments handles GET /api/v1/projects/:projectId/comments/live, an
// SSE stream of full comment lists. Each snapshot of the underlying live
// query is sent as one "comments" event; stale intermediate snapshots may
// be dropped since every event carries the complete list. The subscription
// is cancelled on client disconnect, and a signed-in viewer's stream also
// ends when their session is signed out elsewhere.
func (h *CommentHandler) StreamComments(c *gin.Context) {
	projectID := c.Param("projectId")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates := make(chan []*models.Comment, 1)
	feed := core.NewSwitcher(h.comments, h.logger)
	defer feed.Close()

	err := feed.Open(ctx, projectID, func(comments []*models.Comment) {
		// Latest-wins: replace a pending, unconsumed snapshot.
		for {
			select {
			case updates <- comments:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open comment feed"})
		return
	}

	ident, _ := middleware.CurrentIdentity(c)
	if ident != nil {
		// The registration snapshot reports current state; only a change
		// to nil published afterwards (sign-out) ends the stream.
		unsubscribe := h.sessions.Subscribe(ident.UID, func(current *identity.Identity, initial bool) {
			if !initial && current == nil {
				cancel()
			}
		})
		defer unsubscribe()
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case comments := <-updates:
			c.SSEvent("comments", decorateComments(comments, ident))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func decorateComments(comments []*models.Comment, ident *identity.Identity) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		canDelete := ident != nil && (ident.Admin || ident.UID == comment.UserID)
		out = append(out, CommentResponse{Comment: comment, CanDelete: canDelete})
	}
	return out
}
