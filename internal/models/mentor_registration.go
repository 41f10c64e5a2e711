package models

// MentorRegistrationRequest represents a mentor application submission.
// Certifications is the only optional field.
type MentorRegistrationRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	ProfileURL     string `json:"profileUrl" binding:"required,url"`
	Country        string `json:"country" binding:"required"`
	Languages      string `json:"languages" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Availability   string `json:"availability" binding:"required"`
	Certifications string `json:"certifications"`
	Experience     string `json:"experience" binding:"required"`
}

// MentorRegistrationResponse represents the response after a mentor application
type MentorRegistrationResponse struct {
	Success  bool   `json:"success"`
	MentorID int64  `json:"mentorId,omitempty"`
	Error    string `json:"error,omitempty"`
}
