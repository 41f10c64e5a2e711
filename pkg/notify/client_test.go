package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testPayload() *Payload {
	return &Payload{
		MentorEmail:        "layla@example.com",
		MentorName:         "Layla Hassan",
		MenteeName:         "Omar Khalil",
		MenteeEmail:        "Omar@Example.com",
		MenteeAvailability: "Weekday evenings",
		Message:            "I would like guidance moving into offensive security.",
	}
}

func TestDispatch_PostsPayloadWithAuthToken(t *testing.T) {
	var gotPath, gotToken string
	var gotBody Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Notifier-Auth-Token")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "shared-secret", server.Client())

	err := client.Dispatch(context.Background(), testPayload())

	assert.NoError(t, err)
	assert.Equal(t, "/send", gotPath)
	assert.Equal(t, "shared-secret", gotToken)
	assert.Equal(t, "Omar@Example.com", gotBody.MenteeEmail)
	assert.Equal(t, "layla@example.com", gotBody.MentorEmail)
}

func TestDispatch_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to send email","error":"provider rejected"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())

	err := client.Dispatch(context.Background(), testPayload())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDispatch_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", http.DefaultClient)

	err := client.Dispatch(context.Background(), testPayload())

	assert.Error(t, err)
}

func TestDispatchLoginLink_PostsToLoginRoute(t *testing.T) {
	var gotPath string
	var gotBody LoginLinkPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())

	err := client.DispatchLoginLink(context.Background(), &LoginLinkPayload{
		ModeratorEmail: "rania@example.com",
		ModeratorName:  "Rania Aziz",
		LoginURL:       "https://cybermentor.example.com/admin/auth/callback?token=atk_abc_1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "/send-login-link", gotPath)
	assert.Equal(t, "rania@example.com", gotBody.ModeratorEmail)
	assert.Contains(t, gotBody.LoginURL, "token=atk_abc_1")
}
