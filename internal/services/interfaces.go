package services

import (
	"context"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/jwt"
)

// ContactServiceInterface defines the interface for connection request operations
type ContactServiceInterface interface {
	SubmitConnectionRequest(ctx context.Context, req *models.ConnectionRequestInput) (*models.ConnectionRequestResponse, error)
}

// MentorServiceInterface defines the interface for directory operations
type MentorServiceInterface interface {
	GetApprovedMentors(ctx context.Context) ([]*models.Mentor, error)
	GetApprovedByID(ctx context.Context, id int64) (*models.Mentor, error)
}

// RegistrationServiceInterface defines the interface for registration operations
type RegistrationServiceInterface interface {
	RegisterMentor(ctx context.Context, req *models.MentorRegistrationRequest) (*models.MentorRegistrationResponse, error)
	RegisterMentee(ctx context.Context, req *models.MenteeRegistrationRequest) (*models.MenteeRegistrationResponse, error)
}

// AdminAuthServiceInterface defines the one-time login flow for moderators
type AdminAuthServiceInterface interface {
	RequestLogin(ctx context.Context, email string) (*models.AdminRequestLoginResponse, error)
	VerifyLogin(ctx context.Context, token string) (*models.AdminSession, string, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// AdminMentorsServiceInterface defines mentor moderation operations
type AdminMentorsServiceInterface interface {
	ListMentors(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error)
	ApproveMentor(ctx context.Context, session *models.AdminSession, mentorID int64) (*models.ModerationDecisionResponse, error)
	RejectMentor(ctx context.Context, session *models.AdminSession, mentorID int64) (*models.ModerationDecisionResponse, error)
}

// ModerationServiceInterface defines blocklist and newsletter-list operations
type ModerationServiceInterface interface {
	ListBlockedEmails(ctx context.Context) ([]*models.BlockedEmail, error)
	BlockEmail(ctx context.Context, session *models.AdminSession, req *models.BlockEmailRequest) (*models.BlockedEmail, error)
	UnblockEmail(ctx context.Context, session *models.AdminSession, id int64) error
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
	DeleteSubscriber(ctx context.Context, session *models.AdminSession, id int64) error
	ListConnectionRequests(ctx context.Context, limit int) ([]*models.ConnectionRequest, error)
}

// Ensure services implement their interfaces
var _ ContactServiceInterface = (*ContactService)(nil)
var _ MentorServiceInterface = (*MentorService)(nil)
var _ RegistrationServiceInterface = (*RegistrationService)(nil)
var _ AdminAuthServiceInterface = (*AdminAuthService)(nil)
var _ AdminMentorsServiceInterface = (*AdminMentorsService)(nil)
var _ ModerationServiceInterface = (*ModerationService)(nil)
var _ MentorResolver = (*MentorService)(nil)
