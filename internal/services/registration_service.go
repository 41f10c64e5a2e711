package services

import (
	"context"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"go.uber.org/zap"
)

// RegistrationService handles mentor applications and mentee signups
type RegistrationService struct {
	mentorRepo     repository.MentorStore
	subscriberRepo repository.SubscriberStore
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	mentorRepo repository.MentorStore,
	subscriberRepo repository.SubscriberStore,
) *RegistrationService {
	return &RegistrationService{
		mentorRepo:     mentorRepo,
		subscriberRepo: subscriberRepo,
	}
}

// RegisterMentor creates a pending mentor profile awaiting moderation
func (s *RegistrationService) RegisterMentor(ctx context.Context, req *models.MentorRegistrationRequest) (*models.MentorRegistrationResponse, error) {
	mentor := &models.Mentor{
		Name:           req.Name,
		Email:          models.NormalizeEmail(req.Email),
		ProfileURL:     req.ProfileURL,
		Country:        req.Country,
		Languages:      req.Languages,
		Skills:         req.Skills,
		Availability:   req.Availability,
		Certifications: req.Certifications,
		Experience:     req.Experience,
		Status:         models.MentorStatusPending,
	}

	id, err := s.mentorRepo.Create(ctx, mentor)
	if err != nil {
		metrics.MentorRegistrations.WithLabelValues("error").Inc()
		logger.Error("Failed to register mentor", zap.Error(err))
		return &models.MentorRegistrationResponse{
			Success: false,
			Error:   "Error submitting application. Please try again.",
		}, nil
	}

	metrics.MentorRegistrations.WithLabelValues("success").Inc()
	logger.Info("Mentor application submitted",
		zap.Int64("mentor_id", id),
		zap.String("country", req.Country))

	return &models.MentorRegistrationResponse{
		Success:  true,
		MentorID: id,
	}, nil
}

// RegisterMentee upserts a newsletter subscriber
func (s *RegistrationService) RegisterMentee(ctx context.Context, req *models.MenteeRegistrationRequest) (*models.MenteeRegistrationResponse, error) {
	email := models.NormalizeEmail(req.Email)

	if err := s.subscriberRepo.Upsert(ctx, req.Name, email, req.Country); err != nil {
		metrics.MenteeSignups.WithLabelValues("error").Inc()
		logger.Error("Failed to register mentee", zap.Error(err))
		return &models.MenteeRegistrationResponse{
			Success: false,
			Error:   "Error submitting registration. Please try again.",
		}, nil
	}

	metrics.MenteeSignups.WithLabelValues("success").Inc()
	return &models.MenteeRegistrationResponse{Success: true}, nil
}
