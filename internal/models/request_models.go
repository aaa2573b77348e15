package models

// PostCommentRequest represents the request body for posting a comment.
type PostCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ContactRequest represents the request body for a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
