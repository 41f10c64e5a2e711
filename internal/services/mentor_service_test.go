package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestGetApprovedMentors_ReadsFromRepositoryWithoutCache(t *testing.T) {
	mentorRepo := new(MockMentorStore)
	svc := services.NewMentorService(mentorRepo, nil)
	ctx := context.Background()

	expected := []*models.Mentor{
		{ID: 1, Name: "Layla Hassan", Status: models.MentorStatusApproved},
		{ID: 2, Name: "Karim Nader", Status: models.MentorStatusApproved},
	}
	mentorRepo.On("ListByStatus", ctx, models.MentorStatusApproved).Return(expected, nil).Once()

	mentors, err := svc.GetApprovedMentors(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, mentors)
	mentorRepo.AssertExpectations(t)
}

func TestGetApprovedByID_ReturnsApprovedMentor(t *testing.T) {
	mentorRepo := new(MockMentorStore)
	svc := services.NewMentorService(mentorRepo, nil)
	ctx := context.Background()

	mentorRepo.On("GetByID", ctx, int64(5)).Return(&models.Mentor{
		ID:     5,
		Name:   "Layla Hassan",
		Status: models.MentorStatusApproved,
	}, nil).Once()

	mentor, err := svc.GetApprovedByID(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), mentor.ID)
}

func TestGetApprovedByID_PendingMentorIsInvisible(t *testing.T) {
	mentorRepo := new(MockMentorStore)
	svc := services.NewMentorService(mentorRepo, nil)
	ctx := context.Background()

	mentorRepo.On("GetByID", ctx, int64(6)).Return(&models.Mentor{
		ID:     6,
		Name:   "Pending Applicant",
		Status: models.MentorStatusPending,
	}, nil).Once()

	mentor, err := svc.GetApprovedByID(ctx, 6)

	assert.ErrorIs(t, err, services.ErrMentorNotFound)
	assert.Nil(t, mentor)
}

func TestGetApprovedByID_NotFound(t *testing.T) {
	mentorRepo := new(MockMentorStore)
	svc := services.NewMentorService(mentorRepo, nil)
	ctx := context.Background()

	mentorRepo.On("GetByID", ctx, int64(999)).Return(nil, repository.ErrMentorNotFound).Once()

	mentor, err := svc.GetApprovedByID(ctx, 999)

	assert.ErrorIs(t, err, services.ErrMentorNotFound)
	assert.Nil(t, mentor)
}

func TestGetApprovedByID_RepositoryError(t *testing.T) {
	mentorRepo := new(MockMentorStore)
	svc := services.NewMentorService(mentorRepo, nil)
	ctx := context.Background()

	dbErr := errors.New("connection reset")
	mentorRepo.On("GetByID", ctx, int64(5)).Return(nil, dbErr).Once()

	mentor, err := svc.GetApprovedByID(ctx, 5)

	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, mentor)
}
