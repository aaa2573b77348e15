package models

import "time"

// Profile is the Firestore mirror of an authenticated visitor.
// The Firebase Auth UID doubles as the document ID; the UID is also stored
// as a field so queries over the collection carry it without the doc ref.
type Profile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Role        string    `json:"role" firestore:"role"` // "admin" or "user", derived at sign-in
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	LastLogin   time.Time `json:"lastLogin" firestore:"lastLogin,serverTimestamp"`
}
