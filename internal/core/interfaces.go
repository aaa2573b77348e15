package core

import (
	"context"

	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
)

// ProfileService defines the interface for profile-related operations.
type ProfileService interface {
	// EnsureProfile upserts the Firestore mirror of an identity on
	// sign-in: creates the full profile on first sign-in, otherwise only
	// refreshes the last-login timestamp. Returns the profile and whether
	// it was newly created.
	EnsureProfile(ctx context.Context, ident *identity.Identity) (*models.Profile, bool, error)
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
}

// CommentService defines the interface for comment operations, including
// the live per-project feed.
type CommentService interface {
	Post(ctx context.Context, projectID, text string, ident *identity.Identity) (*models.Comment, error)
	// Delete enforces the ownership rule: only the author or an admin may
	// delete a comment.
	Delete(ctx context.Context, commentID string, ident *identity.Identity) error
	ListForProject(ctx context.Context, projectID string) ([]*models.Comment, error)
	Recent(ctx context.Context, limit int) ([]*models.Comment, error)
	Watch(ctx context.Context, projectID string, fn func([]*models.Comment)) (func(), error)
}

// FavoriteService defines the interface for dashboard favorites.
type FavoriteService interface {
	Toggle(ctx context.Context, ident *identity.Identity, projectID string, data models.ProjectData) (bool, error)
	Check(ctx context.Context, uid, projectID string) (bool, error)
	ListForUser(ctx context.Context, uid string) ([]*models.Favorite, error)
}

// MessageService defines the interface for contact messages.
type MessageService interface {
	Submit(ctx context.Context, req models.ContactRequest) (string, error)
	List(ctx context.Context, limit int) ([]*models.Message, error)
	// MarkRead is fire-and-forget: failures are logged, never surfaced.
	MarkRead(ctx context.Context, messageID string)
}
