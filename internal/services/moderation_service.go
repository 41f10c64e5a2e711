package services

import (
	"context"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"go.uber.org/zap"
)

// ModerationService handles blocklist, subscriber list, and connection
// request visibility for the admin console
type ModerationService struct {
	blocklistRepo  repository.BlocklistStore
	subscriberRepo repository.SubscriberStore
	requestRepo    repository.ConnectionRequestStore
}

// NewModerationService creates a new moderation service instance
func NewModerationService(
	blocklistRepo repository.BlocklistStore,
	subscriberRepo repository.SubscriberStore,
	requestRepo repository.ConnectionRequestStore,
) *ModerationService {
	return &ModerationService{
		blocklistRepo:  blocklistRepo,
		subscriberRepo: subscriberRepo,
		requestRepo:    requestRepo,
	}
}

// ListBlockedEmails returns all blocklist entries
func (s *ModerationService) ListBlockedEmails(ctx context.Context) ([]*models.BlockedEmail, error) {
	return s.blocklistRepo.List(ctx)
}

// BlockEmail adds a normalized email to the blocklist
func (s *ModerationService) BlockEmail(ctx context.Context, session *models.AdminSession, req *models.BlockEmailRequest) (*models.BlockedEmail, error) {
	email := models.NormalizeEmail(req.Email)

	entry, err := s.blocklistRepo.Block(ctx, email, req.Reason)
	if err != nil {
		metrics.ModerationActions.WithLabelValues("block_email", "error").Inc()
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("block_email", "success").Inc()
	logger.Info("Email blocked",
		zap.String("email", email),
		zap.String("moderator_id", session.ModeratorID))

	return entry, nil
}

// UnblockEmail removes a blocklist entry
func (s *ModerationService) UnblockEmail(ctx context.Context, session *models.AdminSession, id int64) error {
	if err := s.blocklistRepo.Unblock(ctx, id); err != nil {
		metrics.ModerationActions.WithLabelValues("unblock_email", "error").Inc()
		return err
	}

	metrics.ModerationActions.WithLabelValues("unblock_email", "success").Inc()
	logger.Info("Email unblocked",
		zap.Int64("entry_id", id),
		zap.String("moderator_id", session.ModeratorID))

	return nil
}

// ListSubscribers returns the newsletter list
func (s *ModerationService) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	return s.subscriberRepo.List(ctx)
}

// DeleteSubscriber removes a subscriber from the newsletter list
func (s *ModerationService) DeleteSubscriber(ctx context.Context, session *models.AdminSession, id int64) error {
	if err := s.subscriberRepo.Delete(ctx, id); err != nil {
		metrics.ModerationActions.WithLabelValues("delete_subscriber", "error").Inc()
		return err
	}

	metrics.ModerationActions.WithLabelValues("delete_subscriber", "success").Inc()
	logger.Info("Subscriber deleted",
		zap.Int64("subscriber_id", id),
		zap.String("moderator_id", session.ModeratorID))

	return nil
}

// ListConnectionRequests returns recent connection requests
func (s *ModerationService) ListConnectionRequests(ctx context.Context, limit int) ([]*models.ConnectionRequest, error) {
	return s.requestRepo.List(ctx, limit)
}
