package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anya-ship-it/cybermentor-platform/internal/cache"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"go.uber.org/zap"
)

// AdminMentorsService handles mentor moderation decisions
type AdminMentorsService struct {
	mentorRepo repository.MentorStore
	cache      *cache.DirectoryCache
}

// NewAdminMentorsService creates a new admin mentors service. The cache may
// be nil when the directory cache is disabled.
func NewAdminMentorsService(mentorRepo repository.MentorStore, directoryCache *cache.DirectoryCache) *AdminMentorsService {
	return &AdminMentorsService{
		mentorRepo: mentorRepo,
		cache:      directoryCache,
	}
}

// ListMentors returns mentors in the given moderation state
func (s *AdminMentorsService) ListMentors(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error) {
	if status != models.MentorStatusPending && status != models.MentorStatusApproved {
		return nil, fmt.Errorf("unknown mentor status %q", status)
	}
	return s.mentorRepo.ListByStatus(ctx, status)
}

// ApproveMentor transitions a pending mentor to approved and makes the
// profile visible in the directory.
func (s *AdminMentorsService) ApproveMentor(ctx context.Context, session *models.AdminSession, mentorID int64) (*models.ModerationDecisionResponse, error) {
	if err := s.mentorRepo.Approve(ctx, mentorID); err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			metrics.ModerationActions.WithLabelValues("approve", "not_found").Inc()
			return &models.ModerationDecisionResponse{
				Success: false,
				Error:   "Pending mentor not found",
			}, nil
		}
		metrics.ModerationActions.WithLabelValues("approve", "error").Inc()
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("approve", "success").Inc()
	logger.Info("Mentor approved",
		zap.Int64("mentor_id", mentorID),
		zap.String("moderator_id", session.ModeratorID))

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return &models.ModerationDecisionResponse{Success: true}, nil
}

// RejectMentor deletes a pending mentor application. Approved mentors are
// out of reach; the status guard in the repository protects them.
func (s *AdminMentorsService) RejectMentor(ctx context.Context, session *models.AdminSession, mentorID int64) (*models.ModerationDecisionResponse, error) {
	if err := s.mentorRepo.DeletePending(ctx, mentorID); err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			metrics.ModerationActions.WithLabelValues("reject", "not_found").Inc()
			return &models.ModerationDecisionResponse{
				Success: false,
				Error:   "Pending mentor not found",
			}, nil
		}
		metrics.ModerationActions.WithLabelValues("reject", "error").Inc()
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("reject", "success").Inc()
	logger.Info("Mentor application rejected",
		zap.Int64("mentor_id", mentorID),
		zap.String("moderator_id", session.ModeratorID))

	return &models.ModerationDecisionResponse{Success: true}, nil
}
