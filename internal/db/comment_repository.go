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

const commentsCollection = "comments"

// firestoreCommentRepository implements CommentRepository using Firestore.
type firestoreCommentRepository struct {
	client *firestore.Client
}

// NewFirestoreCommentRepository creates a new Firestore-backed
// CommentRepository.
func NewFirestoreCommentRepository(client *firestore.Client) CommentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CommentRepository.")
	}
	return &firestoreCommentRepository{client: client}
}

// Add creates a new comment document with an auto-generated ID. CreatedAt
// is assigned server-side via the serverTimestamp tag.
func (r *firestoreCommentRepository) Add(ctx context.Context, comment *models.Comment) (string, error) {
	if comment.ProjectID == "" {
		return "", errors.New("comment projectID cannot be empty")
	}
	docRef := r.client.Collection(commentsCollection).NewDoc()
	comment.ID = docRef.ID
	if _, err := docRef.Create(ctx, comment); err != nil {
		return "", fmt.Errorf("failed to create comment: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves one comment by document ID.
func (r *firestoreCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	if commentID == "" {
		return nil, errors.New("commentID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(commentsCollection).Doc(commentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("comment '%s' not found: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment '%s': %w", commentID, err)
	}

	var comment models.Comment
	if err := docSnap.DataTo(&comment); err != nil {
		return nil, fmt.Errorf("failed to decode comment data for '%s': %w", commentID, err)
	}
	comment.ID = docSnap.Ref.ID

	return &comment, nil
}

// Delete removes a comment document. Authorization (author or admin) is
// enforced in the service layer before this is reached.
func (r *firestoreCommentRepository) Delete(ctx context.Context, commentID string) error {
	if commentID == "" {
		return errors.New("commentID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(commentsCollection).Doc(commentID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("comment '%s' not found for deletion: %w", commentID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete comment '%s': %w", commentID, err)
	}
	return nil
}

// ListByProject returns all comments for one project, newest first.
func (r *firestoreCommentRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Comment, error) {
	if projectID == "" {
		return nil, errors.New("projectID cannot be empty for ListByProject operation")
	}
	query := r.client.Collection(commentsCollection).
		Where("projectId", "==", projectID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(query.Documents(ctx))
}

// ListRecent returns the newest comments across all projects, bounded
// server-side so the transfer stays constant as the collection grows.
func (r *firestoreCommentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Comment, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive for ListRecent operation")
	}
	query := r.client.Collection(commentsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.collect(query.Documents(ctx))
}

// Subscribe opens a snapshot listener over one project's comments. A
// goroutine re-decodes the full result set on every snapshot and hands it
// to the callback in query order (newest first). The listener stops when
// the returned cancel function runs or the parent context ends.
func (r *firestoreCommentRepository) Subscribe(ctx context.Context, projectID string, fn func([]*models.Comment)) (func(), error) {
	if projectID == "" {
		return nil, errors.New("projectID cannot be empty for Subscribe operation")
	}
	subCtx, cancel := context.WithCancel(ctx)

	query := r.client.Collection(commentsCollection).
		Where("projectId", "==", projectID).
		OrderBy("createdAt", firestore.Desc)
	snapshots := query.Snapshots(subCtx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Comment subscription for project '%s' ended: %v", projectID, err)
				}
				return
			}
			comments, err := r.collect(snap.Documents)
			if err != nil {
				log.Printf("Error decoding comment snapshot for project '%s': %v", projectID, err)
				continue
			}
			fn(comments)
		}
	}()

	return cancel, nil
}

// collect drains a document iterator into decoded comments, preserving
// iteration order. Undecodable documents are logged and skipped.
func (r *firestoreCommentRepository) collect(iter *firestore.DocumentIterator) ([]*models.Comment, error) {
	defer iter.Stop()

	var comments []*models.Comment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate comments: %w", err)
		}

		var comment models.Comment
		if err := doc.DataTo(&comment); err != nil {
			log.Printf("Error decoding comment data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, &comment)
	}
	return comments, nil
}
