package models

import "time"

// Favorite marks a project as saved to a user's dashboard. It lives in the
// users/{uid}/favorites subcollection with the project ID as the document
// ID, so document existence is the favorited state. Listing fields are
// denormalized so the dashboard renders without touching the listings.
type Favorite struct {
	ID          string    `json:"id" firestore:"-"` // always equals ProjectID
	ProjectID   string    `json:"projectId" firestore:"projectId"`
	ProjectName string    `json:"projectName" firestore:"projectName"`
	ProjectRole string    `json:"projectRole,omitempty" firestore:"projectRole,omitempty"`
	ProjectTech string    `json:"projectTech,omitempty" firestore:"projectTech,omitempty"`
	ProjectYear string    `json:"projectYear,omitempty" firestore:"projectYear,omitempty"`
	SavedAt     time.Time `json:"savedAt" firestore:"savedAt,serverTimestamp"`
}

// ProjectData carries the denormalized listing fields a client sends when
// favoriting a project.
type ProjectData struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Tech string `json:"tech"`
	Year string `json:"year"`
}
