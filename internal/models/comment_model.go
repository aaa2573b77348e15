package models

import "time"

// Comment is a visitor comment attached to one project listing.
// Author fields are denormalized at write time so rendering a thread never
// needs a profile lookup.
type Comment struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	ProjectID string    `json:"projectId" firestore:"projectId"`
	Text      string    `json:"text" firestore:"text"`
	UserID    string    `json:"userId" firestore:"userId"`
	UserName  string    `json:"userName" firestore:"userName"`
	UserPhoto string    `json:"userPhoto,omitempty" firestore:"userPhoto,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
