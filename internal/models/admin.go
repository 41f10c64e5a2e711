package models

import "time"

// ModeratorRole controls access to the administrator console.
type ModeratorRole string

const (
	ModeratorRoleAdmin     ModeratorRole = "admin"
	ModeratorRoleModerator ModeratorRole = "moderator"
)

// IsValid reports whether the role grants console access.
func (r ModeratorRole) IsValid() bool {
	return r == ModeratorRoleAdmin || r == ModeratorRoleModerator
}

// Moderator represents a console user eligible for one-time-token login
type Moderator struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      ModeratorRole `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
}

// AdminSession describes the authenticated moderator attached to a request
type AdminSession struct {
	ModeratorID string        `json:"moderatorId"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Role        ModeratorRole `json:"role"`
	IssuedAt    int64         `json:"issuedAt"`
	ExpiresAt   int64         `json:"expiresAt"`
}

// AdminRequestLoginRequest starts the one-time-token login flow
type AdminRequestLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AdminRequestLoginResponse is intentionally identical for known and unknown
// emails so the endpoint cannot be used to enumerate moderator accounts.
type AdminRequestLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AdminVerifyLoginRequest exchanges a one-time token for a session cookie
type AdminVerifyLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// AdminVerifyLoginResponse returns the established session
type AdminVerifyLoginResponse struct {
	Success bool          `json:"success"`
	Session *AdminSession `json:"session"`
}

// AdminLogoutResponse confirms session termination
type AdminLogoutResponse struct {
	Success bool `json:"success"`
}

// ModerationDecisionResponse represents the result of an approve/reject action
type ModerationDecisionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
