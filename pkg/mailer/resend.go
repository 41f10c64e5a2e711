package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// SendRequest describes a single outbound email.
type SendRequest struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// SendResult reports the provider message ID for a sent email.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender hands emails to a transactional email provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and default from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send sends a single email via Resend.
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	start := time.Now()

	from := req.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.EmailSends.WithLabelValues("error").Inc()
		logger.LogAPICall("resend", "send", "error", duration, zap.Error(err), zap.Strings("to", req.To))
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	metrics.EmailSends.WithLabelValues("success").Inc()
	logger.LogAPICall("resend", "send", "success", duration,
		zap.String("message_id", sent.Id),
		zap.Strings("to", req.To))

	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
