package services

import (
	"context"
	"errors"

	"github.com/anya-ship-it/cybermentor-platform/internal/cache"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"go.uber.org/zap"
)

var ErrMentorNotFound = errors.New("mentor not found")

// MentorService serves the public directory of approved mentors
type MentorService struct {
	mentorRepo repository.MentorStore
	cache      *cache.DirectoryCache
}

// NewMentorService creates a new mentor service. The cache may be nil, in
// which case every read goes to the database.
func NewMentorService(mentorRepo repository.MentorStore, directoryCache *cache.DirectoryCache) *MentorService {
	return &MentorService{
		mentorRepo: mentorRepo,
		cache:      directoryCache,
	}
}

// GetApprovedMentors returns the approved-mentor directory, newest first
func (s *MentorService) GetApprovedMentors(ctx context.Context) ([]*models.Mentor, error) {
	if s.cache != nil && s.cache.IsReady() {
		mentors, err := s.cache.Get()
		if err == nil {
			return mentors, nil
		}
		logger.Warn("Directory cache read failed, falling back to database", zap.Error(err))
	}

	return s.mentorRepo.ListByStatus(ctx, models.MentorStatusApproved)
}

// GetApprovedByID resolves a single approved mentor. Pending mentors are
// invisible through this path.
func (s *MentorService) GetApprovedByID(ctx context.Context, id int64) (*models.Mentor, error) {
	if s.cache != nil && s.cache.IsReady() {
		if mentor, err := s.cache.GetByID(id); err == nil {
			return mentor, nil
		}
	}

	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	if mentor.Status != models.MentorStatusApproved {
		return nil, ErrMentorNotFound
	}

	return mentor, nil
}
