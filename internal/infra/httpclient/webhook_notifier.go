package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"trade_analytics/internal/domain"
)

// WebhookNotifier posts notifications as JSON to an HTTP endpoint.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, opts ...func(*resty.Client)) (*WebhookNotifier, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("webhook url is required")
	}

	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	for _, opt := range opts {
		opt(client)
	}

	return &WebhookNotifier{
		client: client,
		url:    url,
	}, nil
}

func (w *WebhookNotifier) Notify(ctx context.Context, n domain.Notification) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(n).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}

	if resp.StatusCode() >= 400 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode())
	}
	return nil
}
