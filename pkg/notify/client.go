package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/pkg/httpclient"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"go.uber.org/zap"
)

// Payload is the notification dispatch contract. Mentee email keeps the
// casing the mentee typed; normalization happens only for policy lookups.
type Payload struct {
	MentorEmail        string `json:"mentorEmail"`
	MentorName         string `json:"mentorName"`
	MenteeName         string `json:"menteeName"`
	MenteeEmail        string `json:"menteeEmail"`
	MenteeAvailability string `json:"menteeAvailability"`
	Message            string `json:"message"`
}

// LoginLinkPayload carries a moderator one-time login link
type LoginLinkPayload struct {
	ModeratorEmail string `json:"moderatorEmail"`
	ModeratorName  string `json:"moderatorName"`
	LoginURL       string `json:"loginUrl"`
}

// dispatchResponse is the notifier's reply body. Message is optional
// diagnostic text on failure.
type dispatchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher sends mentor notifications through the notifier service.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload *Payload) error
}

// LoginDispatcher sends moderator login links through the notifier service.
type LoginDispatcher interface {
	DispatchLoginLink(ctx context.Context, payload *LoginLinkPayload) error
}

// Client posts notification payloads to the notifier service.
type Client struct {
	baseURL    string
	authToken  string
	httpClient httpclient.Client
}

// NewClient creates a dispatch client for the given notifier base URL.
func NewClient(baseURL, authToken string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authToken:  authToken,
		httpClient: httpClient,
	}
}

// Dispatch sends a mentor notification and treats any non-2xx status as
// failure. The caller decides what a failure means; no retries are
// attempted here.
func (c *Client) Dispatch(ctx context.Context, payload *Payload) error {
	return c.post(ctx, "/send", payload, zap.String("mentor_email", payload.MentorEmail))
}

// DispatchLoginLink sends a moderator one-time login link.
func (c *Client) DispatchLoginLink(ctx context.Context, payload *LoginLinkPayload) error {
	return c.post(ctx, "/send-login-link", payload, zap.String("moderator_email", payload.ModeratorEmail))
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, fields ...zap.Field) error {
	start := time.Now()
	operation := "dispatch" + path

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Notifier-Auth-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.NotificationDispatches.WithLabelValues("error").Inc()
		logger.LogAPICall("notifier", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to call notifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var dr dispatchResponse
		_ = json.NewDecoder(resp.Body).Decode(&dr) //nolint:errcheck // body is best-effort diagnostics
		metrics.NotificationDispatches.WithLabelValues("error").Inc()
		logger.LogAPICall("notifier", operation, "error", duration,
			zap.Int("status_code", resp.StatusCode),
			zap.String("notifier_message", dr.Message),
			zap.String("notifier_error", dr.Error))
		return fmt.Errorf("notifier returned status %d", resp.StatusCode)
	}

	metrics.NotificationDispatches.WithLabelValues("success").Inc()
	logger.LogAPICall("notifier", operation, "success", duration, fields...)

	return nil
}
