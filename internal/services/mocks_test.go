package services_test

import (
	"context"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/notify"
	"github.com/stretchr/testify/mock"
)

// MockMentorStore is a mock implementation of repository.MentorStore
type MockMentorStore struct {
	mock.Mock
}

func (m *MockMentorStore) Create(ctx context.Context, mentor *models.Mentor) (int64, error) {
	args := m.Called(ctx, mentor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMentorStore) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorStore) ListByStatus(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorStore) Approve(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMentorStore) DeletePending(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConnectionRequestStore is a mock implementation of repository.ConnectionRequestStore
type MockConnectionRequestStore struct {
	mock.Mock
}

func (m *MockConnectionRequestStore) Create(ctx context.Context, req *models.ConnectionRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConnectionRequestStore) CountSince(ctx context.Context, menteeEmail string, since time.Time) (int, error) {
	args := m.Called(ctx, menteeEmail, since)
	return args.Int(0), args.Error(1)
}

func (m *MockConnectionRequestStore) List(ctx context.Context, limit int) ([]*models.ConnectionRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConnectionRequest), args.Error(1)
}

// MockSubscriberStore is a mock implementation of repository.SubscriberStore
type MockSubscriberStore struct {
	mock.Mock
}

func (m *MockSubscriberStore) Upsert(ctx context.Context, name, email, country string) error {
	args := m.Called(ctx, name, email, country)
	return args.Error(0)
}

func (m *MockSubscriberStore) List(ctx context.Context) ([]*models.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}

func (m *MockSubscriberStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBlocklistStore is a mock implementation of repository.BlocklistStore
type MockBlocklistStore struct {
	mock.Mock
}

func (m *MockBlocklistStore) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlocklistStore) Block(ctx context.Context, email, reason string) (*models.BlockedEmail, error) {
	args := m.Called(ctx, email, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedEmail), args.Error(1)
}

func (m *MockBlocklistStore) Unblock(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlocklistStore) List(ctx context.Context) ([]*models.BlockedEmail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlockedEmail), args.Error(1)
}

// MockModeratorStore is a mock implementation of repository.ModeratorStore
type MockModeratorStore struct {
	mock.Mock
}

func (m *MockModeratorStore) GetByEmail(ctx context.Context, email string) (*models.Moderator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Moderator), args.Error(1)
}

func (m *MockModeratorStore) GetByLoginToken(ctx context.Context, token string) (*models.Moderator, time.Time, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, time.Time{}, args.Error(2)
	}
	return args.Get(0).(*models.Moderator), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockModeratorStore) SetLoginToken(ctx context.Context, moderatorID int64, token string, exp time.Time) error {
	args := m.Called(ctx, moderatorID, token, exp)
	return args.Error(0)
}

func (m *MockModeratorStore) ClearLoginToken(ctx context.Context, moderatorID int64) error {
	args := m.Called(ctx, moderatorID)
	return args.Error(0)
}

// MockMentorResolver is a mock implementation of services.MentorResolver
type MockMentorResolver struct {
	mock.Mock
}

func (m *MockMentorResolver) GetApprovedByID(ctx context.Context, id int64) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

// MockDispatcher is a mock implementation of notify.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, payload *notify.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockLoginDispatcher is a mock implementation of notify.LoginDispatcher
type MockLoginDispatcher struct {
	mock.Mock
}

func (m *MockLoginDispatcher) DispatchLoginLink(ctx context.Context, payload *notify.LoginLinkPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
