package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/anya-ship-it/cybermentor-platform/config"
	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/anya-ship-it/cybermentor-platform/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func contactTestConfig() *config.Config {
	return &config.Config{
		ContactPolicy: config.ContactPolicyConfig{
			MessageMinLength:  120,
			DailyRequestLimit: 3,
		},
	}
}

func approvedMentor() *models.Mentor {
	return &models.Mentor{
		ID:     42,
		Name:   "Layla Hassan",
		Email:  "layla@example.com",
		Status: models.MentorStatusApproved,
	}
}

func validInput() *models.ConnectionRequestInput {
	return &models.ConnectionRequestInput{
		MentorID:     42,
		Name:         "Omar Khalil",
		Email:        "omar@example.com",
		Availability: "Weekday evenings",
		Message:      strings.Repeat("I want to move from SOC analysis into offensive security and need guidance. ", 3),
	}
}

func newContactFixture() (*services.ContactService, *MockConnectionRequestStore, *MockBlocklistStore, *MockSubscriberStore, *MockMentorResolver, *MockDispatcher) {
	requestRepo := new(MockConnectionRequestStore)
	blocklistRepo := new(MockBlocklistStore)
	subscriberRepo := new(MockSubscriberStore)
	mentors := new(MockMentorResolver)
	dispatcher := new(MockDispatcher)
	svc := services.NewContactService(requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher, contactTestConfig())
	return svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher
}

func TestSubmitConnectionRequest_Success(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).Return(int64(1), nil).Once()
	subscriberRepo.On("Upsert", ctx, "Omar Khalil", "omar@example.com", "").Return(nil).Once()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*notify.Payload")).Return(nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Reference)
	assert.Empty(t, resp.Error)
	requestRepo.AssertExpectations(t)
	blocklistRepo.AssertExpectations(t)
	subscriberRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestSubmitConnectionRequest_NormalizesStoredEmailKeepsNotificationCasing(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()
	input.Email = "Aisha@Example.com"

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "aisha@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "aisha@example.com", mock.AnythingOfType("time.Time")).Return(0, nil).Once()

	var stored *models.ConnectionRequest
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.ConnectionRequest)
		}).
		Return(int64(1), nil).Once()
	subscriberRepo.On("Upsert", ctx, input.Name, "aisha@example.com", "").Return(nil).Once()

	var payload *notify.Payload
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*notify.Payload")).
		Run(func(args mock.Arguments) {
			payload = args.Get(1).(*notify.Payload)
		}).
		Return(nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "aisha@example.com", stored.MenteeEmail)
	assert.Equal(t, "Aisha@Example.com", payload.MenteeEmail)
	assert.Equal(t, "layla@example.com", payload.MentorEmail)
}

func TestSubmitConnectionRequest_MissingFields(t *testing.T) {
	svc, requestRepo, _, _, mentors, dispatcher := newContactFixture()
	input := validInput()
	input.Availability = "   "

	resp, err := svc.SubmitConnectionRequest(context.Background(), input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please fill in all fields", resp.Error)
	mentors.AssertNotCalled(t, "GetApprovedByID")
	requestRepo.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestSubmitConnectionRequest_HoneypotDiscardsSilently(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	input := validInput()
	input.Website = "https://spam.example.com"

	resp, err := svc.SubmitConnectionRequest(context.Background(), input)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	// Same response shape as a real success: a reference is always present
	assert.NotEmpty(t, resp.Reference)
	assert.Empty(t, resp.Error)
	mentors.AssertNotCalled(t, "GetApprovedByID")
	blocklistRepo.AssertNotCalled(t, "IsBlocked")
	requestRepo.AssertNotCalled(t, "CountSince")
	requestRepo.AssertNotCalled(t, "Create")
	subscriberRepo.AssertNotCalled(t, "Upsert")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestSubmitConnectionRequest_MessageTooShort(t *testing.T) {
	svc, requestRepo, _, _, mentors, _ := newContactFixture()
	input := validInput()
	input.Message = "Short message, well under the policy floor."

	resp, err := svc.SubmitConnectionRequest(context.Background(), input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please provide at least 120 characters explaining what you want to get out of this mentorship.", resp.Error)
	mentors.AssertNotCalled(t, "GetApprovedByID")
	requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitConnectionRequest_MessageLengthCountsRunes(t *testing.T) {
	svc, requestRepo, _, _, mentors, _ := newContactFixture()
	input := validInput()
	// 90 Arabic characters encode to well over 120 bytes; still too short
	input.Message = strings.Repeat("أريد التوجيه في مجال الأمن السيبراني الهجومي ", 2)
	if utf8.RuneCountInString(input.Message) >= 120 {
		t.Fatalf("fixture message must be under 120 runes, got %d", utf8.RuneCountInString(input.Message))
	}
	if len(input.Message) < 120 {
		t.Fatalf("fixture message must exceed 120 bytes, got %d", len(input.Message))
	}

	resp, err := svc.SubmitConnectionRequest(context.Background(), input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please provide at least 120 characters explaining what you want to get out of this mentorship.", resp.Error)
	mentors.AssertNotCalled(t, "GetApprovedByID")
	requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitConnectionRequest_MentorNotFound(t *testing.T) {
	svc, requestRepo, blocklistRepo, _, mentors, _ := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(nil, services.ErrMentorNotFound).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Mentor not found", resp.Error)
	blocklistRepo.AssertNotCalled(t, "IsBlocked")
	requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitConnectionRequest_MentorResolutionError(t *testing.T) {
	svc, requestRepo, blocklistRepo, _, mentors, _ := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(nil, errors.New("connection refused")).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, resp)
	blocklistRepo.AssertNotCalled(t, "IsBlocked")
	requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitConnectionRequest_BlockedEmail(t *testing.T) {
	svc, requestRepo, blocklistRepo, _, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(true, nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Your email address has been blocked from sending connection requests. Please contact support.", resp.Error)
	requestRepo.AssertNotCalled(t, "CountSince")
	requestRepo.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestSubmitConnectionRequest_BlocklistCheckError(t *testing.T) {
	svc, requestRepo, blocklistRepo, _, mentors, _ := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, errors.New("connection refused")).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, resp)
	requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitConnectionRequest_RateLimited(t *testing.T) {
	svc, requestRepo, blocklistRepo, _, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "You have reached the maximum of 3 connection requests per day. Please try again later.", resp.Error)
	requestRepo.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestSubmitConnectionRequest_UnderRateLimitAdmitted(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(2, nil).Once()
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).Return(int64(7), nil).Once()
	subscriberRepo.On("Upsert", ctx, input.Name, "omar@example.com", "").Return(nil).Once()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*notify.Payload")).Return(nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	requestRepo.AssertExpectations(t)
}

func TestSubmitConnectionRequest_StoreFailureReturnsFallback(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).Return(int64(0), errors.New("insert failed")).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error sending request. Please try again or contact the mentor directly at: layla@example.com", resp.Error)
	subscriberRepo.AssertNotCalled(t, "Upsert")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestSubmitConnectionRequest_DispatchFailureKeepsStoredRequest(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).Return(int64(9), nil).Once()
	subscriberRepo.On("Upsert", ctx, input.Name, "omar@example.com", "").Return(nil).Once()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*notify.Payload")).Return(errors.New("notifier unreachable")).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error sending request. Please try again or contact the mentor directly at: layla@example.com", resp.Error)
	requestRepo.AssertExpectations(t)
}

func TestSubmitConnectionRequest_SubscriberUpsertFailureIsBestEffort(t *testing.T) {
	svc, requestRepo, blocklistRepo, subscriberRepo, mentors, dispatcher := newContactFixture()
	ctx := context.Background()
	input := validInput()

	mentors.On("GetApprovedByID", ctx, int64(42)).Return(approvedMentor(), nil).Once()
	blocklistRepo.On("IsBlocked", ctx, "omar@example.com").Return(false, nil).Once()
	requestRepo.On("CountSince", ctx, "omar@example.com", mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	requestRepo.On("Create", ctx, mock.AnythingOfType("*models.ConnectionRequest")).Return(int64(3), nil).Once()
	subscriberRepo.On("Upsert", ctx, input.Name, "omar@example.com", "").Return(errors.New("constraint violation")).Once()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*notify.Payload")).Return(nil).Once()

	resp, err := svc.SubmitConnectionRequest(ctx, input)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	dispatcher.AssertExpectations(t)
}
