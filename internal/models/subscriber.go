package models

import "time"

// Subscriber represents a newsletter-list entry keyed by normalized email
type Subscriber struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MenteeRegistrationRequest represents a mentee/newsletter signup submission
type MenteeRegistrationRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Country string `json:"country" binding:"required"`
}

// MenteeRegistrationResponse represents the response after a mentee signup
type MenteeRegistrationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
