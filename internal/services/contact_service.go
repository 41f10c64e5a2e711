package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anya-ship-it/cybermentor-platform/config"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/anya-ship-it/cybermentor-platform/pkg/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const rateLimitWindow = 24 * time.Hour

// MentorResolver resolves approved mentors for the admission pipeline
type MentorResolver interface {
	GetApprovedByID(ctx context.Context, id int64) (*models.Mentor, error)
}

// ContactService runs connection requests through the admission pipeline:
// validation, honeypot, message length, blocklist, rate limit, insert,
// subscriber upsert, mentor notification.
type ContactService struct {
	requestRepo    repository.ConnectionRequestStore
	blocklistRepo  repository.BlocklistStore
	subscriberRepo repository.SubscriberStore
	mentors        MentorResolver
	dispatcher     notify.Dispatcher
	config         *config.Config
}

// NewContactService creates a new contact service instance
func NewContactService(
	requestRepo repository.ConnectionRequestStore,
	blocklistRepo repository.BlocklistStore,
	subscriberRepo repository.SubscriberStore,
	mentors MentorResolver,
	dispatcher notify.Dispatcher,
	cfg *config.Config,
) *ContactService {
	return &ContactService{
		requestRepo:    requestRepo,
		blocklistRepo:  blocklistRepo,
		subscriberRepo: subscriberRepo,
		mentors:        mentors,
		dispatcher:     dispatcher,
		config:         cfg,
	}
}

// SubmitConnectionRequest admits or rejects a connection request. Business
// rejections come back in the response struct; a non-nil error means an
// internal fault the handler maps to a 5xx.
//
// The rate-limit check and the insert are not atomic. Two submissions racing
// past the count together can both land; the window is an abuse throttle,
// not an accounting invariant.
func (s *ContactService) SubmitConnectionRequest(ctx context.Context, req *models.ConnectionRequestInput) (*models.ConnectionRequestResponse, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Availability) == "" ||
		strings.TrimSpace(req.Message) == "" {
		metrics.ConnectionRequestSubmissions.WithLabelValues("missing_fields").Inc()
		return &models.ConnectionRequestResponse{
			Success: false,
			Error:   "Please fill in all fields",
		}, nil
	}

	// Honeypot: real users never see this field. Report success with a
	// synthetic reference, write nothing, so the bot learns nothing.
	if req.Website != "" {
		metrics.ConnectionRequestSubmissions.WithLabelValues("honeypot").Inc()
		logger.Warn("Honeypot field filled, discarding connection request",
			zap.Int64("mentor_id", req.MentorID))
		return &models.ConnectionRequestResponse{
			Success:   true,
			Reference: uuid.NewString(),
		}, nil
	}

	// Message length counts runes, not bytes; Arabic text must not hit the
	// floor early.
	minLength := s.config.ContactPolicy.MessageMinLength
	if utf8.RuneCountInString(req.Message) < minLength {
		metrics.ConnectionRequestSubmissions.WithLabelValues("message_too_short").Inc()
		return &models.ConnectionRequestResponse{
			Success: false,
			Error: fmt.Sprintf(
				"Please provide at least %d characters explaining what you want to get out of this mentorship.",
				minLength),
		}, nil
	}

	mentor, err := s.mentors.GetApprovedByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, ErrMentorNotFound) {
			metrics.ConnectionRequestSubmissions.WithLabelValues("mentor_not_found").Inc()
			return &models.ConnectionRequestResponse{
				Success: false,
				Error:   "Mentor not found",
			}, nil
		}
		return nil, fmt.Errorf("failed to resolve mentor: %w", err)
	}

	normalizedEmail := models.NormalizeEmail(req.Email)

	blocked, err := s.blocklistRepo.IsBlocked(ctx, normalizedEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocklist: %w", err)
	}
	if blocked {
		metrics.ConnectionRequestSubmissions.WithLabelValues("blocked").Inc()
		logger.Warn("Connection request from blocked email", zap.String("email", normalizedEmail))
		return &models.ConnectionRequestResponse{
			Success: false,
			Error:   "Your email address has been blocked from sending connection requests. Please contact support.",
		}, nil
	}

	limit := s.config.ContactPolicy.DailyRequestLimit
	count, err := s.requestRepo.CountSince(ctx, normalizedEmail, time.Now().Add(-rateLimitWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent requests: %w", err)
	}
	if count >= limit {
		metrics.ConnectionRequestSubmissions.WithLabelValues("rate_limited").Inc()
		return &models.ConnectionRequestResponse{
			Success: false,
			Error: fmt.Sprintf(
				"You have reached the maximum of %d connection requests per day. Please try again later.",
				limit),
		}, nil
	}

	record := &models.ConnectionRequest{
		Reference:    uuid.NewString(),
		MentorID:     mentor.ID,
		MenteeName:   req.Name,
		MenteeEmail:  normalizedEmail,
		Availability: req.Availability,
		Message:      req.Message,
	}

	if _, err := s.requestRepo.Create(ctx, record); err != nil {
		metrics.ConnectionRequestSubmissions.WithLabelValues("store_error").Inc()
		logger.Error("Failed to store connection request",
			zap.Int64("mentor_id", mentor.ID),
			zap.Error(err))
		return s.fallbackResponse(mentor), nil
	}

	// Best effort: a subscriber upsert failure never blocks the pipeline
	if err := s.subscriberRepo.Upsert(ctx, req.Name, normalizedEmail, ""); err != nil {
		logger.Error("Failed to upsert subscriber after connection request",
			zap.String("email", normalizedEmail),
			zap.Error(err))
	}

	// The notification carries the mentee email exactly as typed
	payload := &notify.Payload{
		MentorEmail:        mentor.Email,
		MentorName:         mentor.Name,
		MenteeName:         req.Name,
		MenteeEmail:        req.Email,
		MenteeAvailability: req.Availability,
		Message:            req.Message,
	}
	if err := s.dispatcher.Dispatch(ctx, payload); err != nil {
		// The stored request stays committed; only the notification failed
		metrics.ConnectionRequestSubmissions.WithLabelValues("notify_error").Inc()
		logger.Error("Failed to dispatch mentor notification",
			zap.Int64("mentor_id", mentor.ID),
			zap.String("reference", record.Reference),
			zap.Error(err))
		return s.fallbackResponse(mentor), nil
	}

	metrics.ConnectionRequestSubmissions.WithLabelValues("success").Inc()
	return &models.ConnectionRequestResponse{
		Success:   true,
		Reference: record.Reference,
	}, nil
}

func (s *ContactService) fallbackResponse(mentor *models.Mentor) *models.ConnectionRequestResponse {
	return &models.ConnectionRequestResponse{
		Success: false,
		Error:   "Error sending request. Please try again or contact the mentor directly at: " + mentor.Email,
	}
}
