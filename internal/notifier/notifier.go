// Package notifier delivers out-of-zone alerts to the notification
// service's inbox endpoint.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

// Client posts alerts to a notification service instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the notification service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify creates a notification for the tourist. Callers treat failure
// as best-effort; the alert path never blocks an ingest response.
func (c *Client) Notify(ctx context.Context, touristID int64, message string) error {
	body, err := json.Marshal(model.CreateNotificationRequest{
		UserID:  &touristID,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("notification service returned %d", resp.StatusCode)
	}
	return nil
}

// LogOnly records alerts in the process log. Used when no notification
// service is configured.
type LogOnly struct{}

// Notify logs the alert and reports success.
func (LogOnly) Notify(_ context.Context, touristID int64, message string) error {
	slog.Warn("ALERT", "tourist_id", touristID, "message", message)
	return nil
}
