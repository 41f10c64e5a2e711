package models

import "time"

// ConnectionRequestInput represents a connection request form submission.
// Website is a honeypot field hidden on the real form; humans leave it empty.
type ConnectionRequestInput struct {
	MentorID     int64  `json:"mentorId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Availability string `json:"availability" binding:"required"`
	Message      string `json:"message" binding:"required"`
	Website      string `json:"website"`
}

// ConnectionRequestResponse represents the response after submitting a connection request
type ConnectionRequestResponse struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ConnectionRequest represents a stored connection request record
type ConnectionRequest struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	MentorID     int64     `json:"mentorId"`
	MenteeName   string    `json:"menteeName"`
	MenteeEmail  string    `json:"menteeEmail"` // stored normalized (lowercase)
	Availability string    `json:"availability"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}
