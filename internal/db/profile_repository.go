package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"portfolio-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is the common error for a missing Firestore document. All
// repositories in this package wrap it so callers can errors.Is against a
// single sentinel.
var ErrNotFound = errors.New("document not found")

// firestoreProfileRepository implements ProfileRepository using Firestore.
// The Firebase Auth UID is the document ID.
type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a new Firestore-backed
// ProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProfileRepository.")
	}
	return &firestoreProfileRepository{client: client}
}

// GetByUID retrieves a profile document by Firebase Auth UID.
func (r *firestoreProfileRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByUID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile '%s': %w", uid, err)
	}

	var profile models.Profile
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile data for '%s': %w", uid, err)
	}
	profile.UID = docSnap.Ref.ID

	return &profile, nil
}

// Create adds a new profile document. CreatedAt and LastLogin are assigned
// server-side via the serverTimestamp tags.
func (r *firestoreProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.UID == "" {
		return errors.New("profile UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(profile.UID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("profile '%s' already exists: %w", profile.UID, err)
		}
		return fmt.Errorf("failed to create profile '%s': %w", profile.UID, err)
	}
	return nil
}

// Touch merge-updates only the lastLogin field, leaving the rest of the
// profile untouched. Repeat sign-ins therefore cost one idempotent write.
func (r *firestoreProfileRepository) Touch(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Touch operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"lastLogin": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to touch profile '%s': %w", uid, err)
	}
	return nil
}
