package models

import "time"

// Message is a contact-form submission. Messages are created by anonymous
// visitors and only ever mutated by an admin flipping the read flag; they
// are never deleted.
type Message struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Message   string    `json:"message" firestore:"message"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
