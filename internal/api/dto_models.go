package api

import (
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionResponse is returned after a sign-in landing: the verified
// identity and its Firestore profile mirror.
type SessionResponse struct {
	Identity *identity.Identity `json:"identity"`
	Profile  *models.Profile    `json:"profile"`
	Created  bool               `json:"created"`
}

// CommentResponse wraps a comment with the viewer-relative delete
// affordance. canDelete is advisory, for hiding controls; the delete
// endpoint re-checks ownership regardless.
type CommentResponse struct {
	*models.Comment
	CanDelete bool `json:"canDelete"`
}

// FavoriteStatusResponse reports the favorite state after a check or
// toggle.
type FavoriteStatusResponse struct {
	ProjectID string `json:"projectId"`
	Favorited bool   `json:"favorited"`
}

// ContactResponse acknowledges a stored contact message.
type ContactResponse struct {
	ID string `json:"id"`
}
