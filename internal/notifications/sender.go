package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Sender delivers one push notification.
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Token string `json:"token,omitempty"`
}

// WebhookSender posts the notification as JSON to the configured push
// webhook, which relays it to the phone. Best effort, no retries.
type WebhookSender struct {
	webhookURL string
	pushToken  string
	httpClient *http.Client
}

func NewWebhookSender(webhookURL, pushToken string, httpClient *http.Client) *WebhookSender {
	return &WebhookSender{
		webhookURL: webhookURL,
		pushToken:  pushToken,
		httpClient: httpClient,
	}
}

func (s *WebhookSender) Send(ctx context.Context, title, body string) error {
	payloadBytes, err := json.Marshal(pushPayload{
		Title: title,
		Body:  body,
		Token: s.pushToken,
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post push webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push webhook returned %d: %s", resp.StatusCode, respBytes)
	}

	return nil
}

// NoopSender is used when no push webhook is configured.
type NoopSender struct{}

func (s NoopSender) Send(_ context.Context, title, _ string) error {
	log.Debugf("push notifications disabled, dropping [%s]", title)
	return nil
}
