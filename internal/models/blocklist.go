package models

import "time"

// BlockedEmail represents a blocklist entry. Email is stored normalized.
type BlockedEmail struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockEmailRequest represents an administrator's request to block an email
type BlockEmailRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Reason string `json:"reason"`
}
