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

const messagesCollection = "messages"

// firestoreMessageRepository implements MessageRepository using Firestore.
type firestoreMessageRepository struct {
	client *firestore.Client
}

// NewFirestoreMessageRepository creates a new Firestore-backed
// MessageRepository.
func NewFirestoreMessageRepository(client *firestore.Client) MessageRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for MessageRepository.")
	}
	return &firestoreMessageRepository{client: client}
}

// Create stores a new contact message with an auto-generated ID, read
// defaulting to false and the timestamp assigned server-side.
func (r *firestoreMessageRepository) Create(ctx context.Context, message *models.Message) (string, error) {
	docRef := r.client.Collection(messagesCollection).NewDoc()
	message.ID = docRef.ID
	message.Read = false
	if _, err := docRef.Create(ctx, message); err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}
	return docRef.ID, nil
}

// List returns the newest messages, bounded server-side.
func (r *firestoreMessageRepository) List(ctx context.Context, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive for List operation")
	}

	iter := r.client.Collection(messagesCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var messages []*models.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate messages: %w", err)
		}

		var message models.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error decoding message data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}
	return messages, nil
}

// MarkRead flips the single read field of one message.
func (r *firestoreMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	if messageID == "" {
		return errors.New("messageID cannot be empty for MarkRead operation")
	}
	_, err := r.client.Collection(messagesCollection).Doc(messageID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("message '%s' not found: %w", messageID, ErrNotFound)
		}
		return fmt.Errorf("failed to mark message '%s' read: %w", messageID, err)
	}
	return nil
}
