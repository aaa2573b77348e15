package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/models"
)

// CommentWatcher is the slice of CommentService the Switcher needs.
type CommentWatcher interface {
	Watch(ctx context.Context, projectID string, fn func([]*models.Comment)) (func(), error)
}

// Switcher owns at most one live comment subscription at a time. Opening a
// feed for a new project always cancels the active one first, so a
// consumer can never leak a listener against a project it is no longer
// showing. This is the expandable-comments-panel lifecycle: one panel open
// at a time, toggled closed by a second open of the same project.
type Switcher struct {
	watcher CommentWatcher
	logger  *zap.Logger

	mu       sync.Mutex
	active   func()
	activeID string
	subID    string
}

// NewSwitcher creates a Switcher over the given watcher.
func NewSwitcher(watcher CommentWatcher, logger *zap.Logger) *Switcher {
	return &Switcher{watcher: watcher, logger: logger}
}

// Open subscribes to projectID's comments, cancelling any active
// subscription first. The cancellation happens before the new subscription
// is created, so at most one is ever outstanding.
func (s *Switcher) Open(ctx context.Context, projectID string, fn func([]*models.Comment)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked()

	unsubscribe, err := s.watcher.Watch(ctx, projectID, fn)
	if err != nil {
		return fmt.Errorf("failed to open comment feed for '%s': %w", projectID, err)
	}
	s.active = unsubscribe
	s.activeID = projectID
	s.subID = uuid.NewString()
	s.logger.Debug("comment feed opened", zap.String("project", projectID), zap.String("subscription", s.subID))
	return nil
}

// Toggle opens the feed for projectID, or closes it if that project's feed
// is already the active one. Returns whether a feed is open afterwards.
func (s *Switcher) Toggle(ctx context.Context, projectID string, fn func([]*models.Comment)) (bool, error) {
	s.mu.Lock()
	wasActive := s.active != nil && s.activeID == projectID
	s.mu.Unlock()

	if wasActive {
		s.Close()
		return false, nil
	}
	if err := s.Open(ctx, projectID, fn); err != nil {
		return false, err
	}
	return true, nil
}

// Close cancels the active subscription, if any. Idempotent.
func (s *Switcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Active returns the project ID of the open feed, if one is open.
func (s *Switcher) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID, s.active != nil
}

func (s *Switcher) closeLocked() {
	if s.active == nil {
		return
	}
	s.active()
	s.logger.Debug("comment feed closed", zap.String("project", s.activeID), zap.String("subscription", s.subID))
	s.active = nil
	s.activeID = ""
	s.subID = ""
}
