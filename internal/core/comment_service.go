package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
)

// defaultRecentCommentLimit bounds the admin "recent comments" view when
// no explicit limit is requested.
const defaultRecentCommentLimit = 10

// ErrEmptyComment is returned when the comment text is blank after
// trimming. No write is performed.
var ErrEmptyComment = errors.New("comment text is empty")

// ErrCommentNotFound is returned when a comment does not exist.
var ErrCommentNotFound = errors.New("comment not found")

// ErrNotAllowed is returned when an identity tries to delete a comment it
// does not own without the admin flag.
var ErrNotAllowed = errors.New("not allowed")

// commentService implements the CommentService interface.
type commentService struct {
	comments  db.CommentRepository
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewCommentService creates a new CommentService instance. Comment text is
// run through a strict HTML sanitizer before storage, since it is rendered
// into other visitors' pages.
func NewCommentService(comments db.CommentRepository, logger *zap.Logger) CommentService {
	return &commentService{
		comments:  comments,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Post appends a comment to a project's thread. Rejects without a store
// write when the identity is absent or the text is blank after trimming
// and sanitization. Author fields are denormalized from the identity.
func (s *commentService) Post(ctx context.Context, projectID, text string, ident *identity.Identity) (*models.Comment, error) {
	if ident == nil {
		return nil, ErrSignInRequired
	}
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		ProjectID: projectID,
		Text:      text,
		UserID:    ident.UID,
		UserName:  ident.DisplayName,
		UserPhoto: ident.PhotoURL,
	}
	id, err := s.comments.Add(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to post comment on '%s': %w", projectID, err)
	}
	comment.ID = id
	s.logger.Info("comment posted", zap.String("project", projectID), zap.String("comment", id), zap.String("uid", ident.UID))
	return comment, nil
}

// Delete removes a comment after checking the ownership rule here, at the
// service boundary: the author or an admin may delete, nobody else. The
// check cannot be bypassed by a direct API call.
func (s *commentService) Delete(ctx context.Context, commentID string, ident *identity.Identity) error {
	if ident == nil {
		return ErrSignInRequired
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrCommentNotFound, commentID)
		}
		return fmt.Errorf("failed to load comment '%s': %w", commentID, err)
	}

	if comment.UserID != ident.UID && !ident.Admin {
		return fmt.Errorf("%w: comment '%s' belongs to another user", ErrNotAllowed, commentID)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment '%s': %w", commentID, err)
	}
	s.logger.Info("comment deleted", zap.String("comment", commentID), zap.String("uid", ident.UID), zap.Bool("admin", ident.Admin))
	return nil
}

// ListForProject returns one project's comments, newest first. Read
// failures degrade to an empty list; the thread renders as "no comments"
// rather than erroring.
func (s *commentService) ListForProject(ctx context.Context, projectID string) ([]*models.Comment, error) {
	comments, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to list comments", zap.String("project", projectID), zap.Error(err))
		return []*models.Comment{}, nil
	}
	return comments, nil
}

// Recent returns the newest comments across all projects for the admin
// view. Read failures degrade to an empty list.
func (s *commentService) Recent(ctx context.Context, limit int) ([]*models.Comment, error) {
	if limit <= 0 {
		limit = defaultRecentCommentLimit
	}
	comments, err := s.comments.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list recent comments", zap.Error(err))
		return []*models.Comment{}, nil
	}
	return comments, nil
}

// Watch opens a live subscription to one project's comments.
func (s *commentService) Watch(ctx context.Context, projectID string, fn func([]*models.Comment)) (func(), error) {
	return s.comments.Subscribe(ctx, projectID, fn)
}
