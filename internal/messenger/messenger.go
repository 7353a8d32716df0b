// Package messenger delivers rendered digests to an incoming webhook.
package messenger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/slack-go/slack"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/markup"
)

// DefaultUsername is the sender name used when none is configured.
const DefaultUsername = "Gbot"

// Config describes the webhook destination and the sender identity merged
// into every message.
type Config struct {
	Webhook  string
	Channel  string
	Username string
	IconURL  string
}

// Messenger posts messages to a Slack-compatible incoming webhook.
type Messenger struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Messenger. A nil httpClient uses http.DefaultClient.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Messenger {
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Messenger{cfg: cfg, httpClient: httpClient, logger: logger}
}

// Send posts a single message.
func (m *Messenger) Send(ctx context.Context, msg markup.Message) error {
	payload := m.envelope(msg)

	m.logger.Debug("POST webhook", slog.String("host", webhookHost(m.cfg.Webhook)))

	err := slack.PostWebhookCustomHTTPContext(ctx, m.cfg.Webhook, m.httpClient, payload)
	if err != nil {
		return m.classify(err)
	}
	return nil
}

// SendMany posts messages one after another, preserving order, and stops at
// the first failure.
func (m *Messenger) SendMany(ctx context.Context, msgs []markup.Message) error {
	for i, msg := range msgs {
		if err := m.Send(ctx, msg); err != nil {
			return fmt.Errorf("failed to send message %d of %d: %w", i+1, len(msgs), err)
		}
	}
	return nil
}

func (m *Messenger) envelope(msg markup.Message) *slack.WebhookMessage {
	payload := &slack.WebhookMessage{
		Channel:  m.cfg.Channel,
		Username: m.cfg.Username,
		IconURL:  m.cfg.IconURL,
		Text:     msg.Text,
	}
	if len(msg.Blocks) > 0 {
		payload.Blocks = &slack.Blocks{BlockSet: msg.Blocks}
	}
	return payload
}

// classify maps webhook failures onto the application error kinds.
func (m *Messenger) classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return &apperrors.NetworkError{
			Status:  http.StatusTooManyRequests,
			Message: rateLimited.Error(),
			URL:     webhookHost(m.cfg.Webhook),
		}
	}

	var coded interface{ HTTPStatusCode() int }
	if errors.As(err, &coded) {
		return &apperrors.NetworkError{
			Status:  coded.HTTPStatusCode(),
			Message: err.Error(),
			URL:     webhookHost(m.cfg.Webhook),
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &apperrors.NetworkError{Message: urlErr.Error(), URL: webhookHost(m.cfg.Webhook)}
	}

	return &apperrors.UnexpectedError{Err: err}
}

// webhookHost hides the secret path of the webhook URL in logs and errors.
func webhookHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "webhook"
	}
	return u.Scheme + "://" + u.Host
}
