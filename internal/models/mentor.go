package models

import (
	"strings"
	"time"
)

// MentorStatus is the moderation state of a mentor profile.
type MentorStatus string

const (
	MentorStatusPending  MentorStatus = "pending"
	MentorStatusApproved MentorStatus = "approved"
)

// Mentor represents a mentor profile in the system
type Mentor struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"` // never exposed on the public surface
	ProfileURL     string       `json:"profileUrl"`
	Country        string       `json:"country"`
	Languages      string       `json:"languages"`
	Skills         string       `json:"skills"`
	Availability   string       `json:"availability"`
	Certifications string       `json:"certifications"`
	Experience     string       `json:"experience"`
	Status         MentorStatus `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// PublicMentorResponse is the directory representation of an approved mentor.
// Contact email is deliberately absent.
type PublicMentorResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProfileURL     string `json:"profileUrl"`
	Country        string `json:"country"`
	Languages      string `json:"languages"`
	Skills         string `json:"skills"`
	Availability   string `json:"availability"`
	Certifications string `json:"certifications,omitempty"`
	Experience     string `json:"experience"`
}

// ToPublicResponse converts a Mentor to its directory representation
func (m *Mentor) ToPublicResponse() PublicMentorResponse {
	return PublicMentorResponse{
		ID:             m.ID,
		Name:           m.Name,
		ProfileURL:     m.ProfileURL,
		Country:        m.Country,
		Languages:      m.Languages,
		Skills:         m.Skills,
		Availability:   m.Availability,
		Certifications: m.Certifications,
		Experience:     m.Experience,
	}
}

// NormalizeEmail lowercases and trims an email for storage and policy lookups.
// Display and notification paths keep the casing the user typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
