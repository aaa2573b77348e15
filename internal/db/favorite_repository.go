package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"portfolio-backend-go/internal/models"
)

const favoritesCollection = "favorites"

// firestoreFavoriteRepository implements FavoriteRepository using the
// users/{uid}/favorites subcollection. Document existence is the favorited
// state; the document ID is the project ID.
type firestoreFavoriteRepository struct {
	client *firestore.Client
}

// NewFirestoreFavoriteRepository creates a new Firestore-backed
// FavoriteRepository.
func NewFirestoreFavoriteRepository(client *firestore.Client) FavoriteRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for FavoriteRepository.")
	}
	return &firestoreFavoriteRepository{client: client}
}

func (r *firestoreFavoriteRepository) favoriteRef(uid, projectID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid).Collection(favoritesCollection).Doc(projectID)
}

// Toggle flips the favorite state inside a transaction, so two concurrent
// toggles of the same (uid, projectID) serialize instead of both observing
// "absent" and both creating. Returns true if the favorite now exists.
func (r *firestoreFavoriteRepository) Toggle(ctx context.Context, uid, projectID string, data models.ProjectData) (bool, error) {
	if uid == "" || projectID == "" {
		return false, errors.New("uid and projectID cannot be empty for Toggle operation")
	}

	ref := r.favoriteRef(uid, projectID)
	var nowFavorited bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		switch {
		case err == nil:
			nowFavorited = false
			return tx.Delete(ref)
		case status.Code(err) == codes.NotFound:
			nowFavorited = true
			return tx.Set(ref, &models.Favorite{
				ProjectID:   projectID,
				ProjectName: data.Name,
				ProjectRole: data.Role,
				ProjectTech: data.Tech,
				ProjectYear: data.Year,
			})
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite '%s' for user '%s': %w", projectID, uid, err)
	}
	return nowFavorited, nil
}

// Exists reports whether the favorite document is present.
func (r *firestoreFavoriteRepository) Exists(ctx context.Context, uid, projectID string) (bool, error) {
	if uid == "" || projectID == "" {
		return false, errors.New("uid and projectID cannot be empty for Exists operation")
	}
	_, err := r.favoriteRef(uid, projectID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check favorite '%s' for user '%s': %w", projectID, uid, err)
	}
	return true, nil
}

// ListByUser returns all of one user's favorites, most recently saved
// first.
func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, uid string) ([]*models.Favorite, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for ListByUser operation")
	}

	iter := r.client.Collection(usersCollection).Doc(uid).Collection(favoritesCollection).
		OrderBy("savedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var favorites []*models.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate favorites for user '%s': %w", uid, err)
		}

		var favorite models.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			log.Printf("Error decoding favorite data (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, uid, err)
			continue
		}
		favorite.ID = doc.Ref.ID
		favorites = append(favorites, &favorite)
	}
	return favorites, nil
}
