package db

import (
	"context"

	"portfolio-backend-go/internal/models"
)

// ProfileRepository defines the interface for profile storage operations.
type ProfileRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	// Touch merge-updates only the last-login timestamp of an existing
	// profile.
	Touch(ctx context.Context, uid string) error
}

// CommentRepository defines the interface for comment storage operations,
// including the live per-project subscription.
type CommentRepository interface {
	Add(ctx context.Context, comment *models.Comment) (string, error)
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
	ListByProject(ctx context.Context, projectID string) ([]*models.Comment, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Comment, error)
	// Subscribe opens a live query for one project's comments, newest
	// first. The callback receives the full current list on every
	// underlying change (not a diff) and may fire zero times before the
	// first snapshot arrives. The returned function cancels the
	// subscription; it is safe to call more than once.
	Subscribe(ctx context.Context, projectID string, fn func([]*models.Comment)) (func(), error)
}

// FavoriteRepository defines the interface for per-user favorite storage.
// The favorite document ID always equals the project ID.
type FavoriteRepository interface {
	// Toggle atomically flips the favorite state for (uid, projectID) and
	// returns the new state: true if the favorite now exists.
	Toggle(ctx context.Context, uid, projectID string, data models.ProjectData) (bool, error)
	Exists(ctx context.Context, uid, projectID string) (bool, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Favorite, error)
}

// MessageRepository defines the interface for contact-message storage.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (string, error)
	List(ctx context.Context, limit int) ([]*models.Message, error)
	MarkRead(ctx context.Context, messageID string) error
}
