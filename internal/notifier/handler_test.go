package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/mailer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, req mailer.SendRequest) (mailer.SendResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(mailer.SendResult), args.Error(1)
}

func newNotifierRouter(sender mailer.Sender, authToken string) *gin.Engine {
	handler := NewHandler(sender, "noreply@cybermentor.example.com")
	router := gin.New()
	authed := router.Group("/", AuthMiddleware(authToken))
	authed.POST("/send", handler.Send)
	authed.POST("/send-login-link", handler.SendLoginLink)
	return router
}

func validSendBody() map[string]string {
	return map[string]string{
		"mentorEmail":        "layla@example.com",
		"mentorName":         "Layla Hassan",
		"menteeName":         "Omar Khalil",
		"menteeEmail":        "omar@example.com",
		"menteeAvailability": "Weekday evenings",
		"message":            "I would like guidance moving into offensive security.",
	}
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSend_DeliversMentorNotification(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	var sent mailer.SendRequest
	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.SendRequest)
		}).
		Return(mailer.SendResult{MessageID: "msg_123"}, nil).Once()

	w := postJSON(router, "/send", validSendBody(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message_id":"msg_123"`)
	assert.Equal(t, []string{"layla@example.com"}, sent.To)
	assert.Equal(t, "omar@example.com", sent.ReplyTo)
	assert.Equal(t, "New Mentorship Request from Omar Khalil", sent.Subject)
	assert.Contains(t, sent.HTML, "Layla Hassan")
	assert.Contains(t, sent.HTML, "Weekday evenings")
	sender.AssertExpectations(t)
}

func TestSend_EscapesHTMLInFreeText(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	var sent mailer.SendRequest
	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.SendRequest)
		}).
		Return(mailer.SendResult{MessageID: "msg_124"}, nil).Once()

	body := validSendBody()
	body["message"] = `<script>alert("xss")</script>`
	w := postJSON(router, "/send", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.HTML, "&lt;script&gt;")
}

func TestSend_InvalidPayload(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	body := validSendBody()
	delete(body, "mentorEmail")
	w := postJSON(router, "/send", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	sender.AssertNotCalled(t, "Send")
}

func TestSend_MailerFailure(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Return(mailer.SendResult{}, errors.New("provider rejected")).Once()

	w := postJSON(router, "/send", validSendBody(), nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send email")
}

func TestSendLoginLink_DeliversLink(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	var sent mailer.SendRequest
	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.SendRequest)
		}).
		Return(mailer.SendResult{MessageID: "msg_200"}, nil).Once()

	w := postJSON(router, "/send-login-link", map[string]string{
		"moderatorEmail": "rania@example.com",
		"moderatorName":  "Rania Aziz",
		"loginUrl":       "https://cybermentor.example.com/admin/auth/callback?token=atk_abc_1",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"rania@example.com"}, sent.To)
	assert.Equal(t, "Your moderator login link", sent.Subject)
	assert.Contains(t, sent.HTML, "atk_abc_1")
}

func TestAuthMiddleware_RejectsWrongToken(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "shared-secret")

	w := postJSON(router, "/send", validSendBody(), map[string]string{
		authTokenHeader: "wrong-secret",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sender.AssertNotCalled(t, "Send")
}

func TestAuthMiddleware_AcceptsSharedSecret(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "shared-secret")

	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Return(mailer.SendResult{MessageID: "msg_1"}, nil).Once()

	w := postJSON(router, "/send", validSendBody(), map[string]string{
		authTokenHeader: "shared-secret",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_DisabledWithoutToken(t *testing.T) {
	sender := new(mockSender)
	router := newNotifierRouter(sender, "")

	sender.On("Send", mock.Anything, mock.AnythingOfType("mailer.SendRequest")).
		Return(mailer.SendResult{MessageID: "msg_1"}, nil).Once()

	w := postJSON(router, "/send", validSendBody(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
