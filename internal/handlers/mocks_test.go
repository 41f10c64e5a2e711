package handlers

import (
	"context"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockContactService struct {
	mock.Mock
}

func (m *mockContactService) SubmitConnectionRequest(ctx context.Context, req *models.ConnectionRequestInput) (*models.ConnectionRequestResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequestResponse), args.Error(1)
}

type mockMentorService struct {
	mock.Mock
}

func (m *mockMentorService) GetApprovedMentors(ctx context.Context) ([]*models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *mockMentorService) GetApprovedByID(ctx context.Context, id int64) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}
