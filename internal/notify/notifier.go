package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thititongumpun/uoobpremium/internal/discord"
	"github.com/thititongumpun/uoobpremium/internal/observability/tracing"
)

// Message is the webhook payload shape Discord expects.
type Message struct {
	Content string          `json:"content"`
	Embeds  []discord.Embed `json:"embeds"`
}

// Notifier delivers announcement messages to the group channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

var ErrWebhookUnconfigured = errors.New("webhook_unconfigured")

// WebhookNotifier posts messages to a Discord webhook URL. Delivery is
// best effort: callers log failures and never retry.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewWebhookNotifier builds a notifier for the given webhook URL.
func NewWebhookNotifier(url string, log *zap.Logger) *WebhookNotifier {
	client := tracing.WrapHTTPClient(&http.Client{Timeout: 10 * time.Second})
	return &WebhookNotifier{
		url:    strings.TrimSpace(url),
		client: client,
		log:    log.Named("notify.webhook"),
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, msg Message) error {
	if n.url == "" {
		return ErrWebhookUnconfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook_status_%d", resp.StatusCode)
	}

	n.log.Debug("announcement delivered", zap.Int("embeds", len(msg.Embeds)))
	return nil
}
