// Package notify is the outbound boundary to the notification dispatcher.
// Delivery is best-effort: failures are logged and never affect the comment
// operation that triggered them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Notifier interface {
	MentionAlert(ctx context.Context, ticketID, commentID string, mentioned []string, text string) error
}

// Webhook posts mention alerts to an external dispatcher endpoint.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *Webhook) MentionAlert(ctx context.Context, ticketID, commentID string, mentioned []string, text string) error {
	payload := map[string]any{
		"ticketId":         ticketID,
		"commentId":        commentID,
		"mentionedUserIds": mentioned,
		"commentText":      text,
	}
	body, err := json.Marshal(payload)
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
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

// Log is the dev dispatcher: it only writes a log line.
type Log struct {
	l zerolog.Logger
}

func NewLog(l zerolog.Logger) *Log { return &Log{l: l} }

func (n *Log) MentionAlert(_ context.Context, ticketID, commentID string, mentioned []string, _ string) error {
	n.l.Info().
		Str("ticketId", ticketID).
		Str("commentId", commentID).
		Strs("mentioned", mentioned).
		Msg("mention alert")
	return nil
}
