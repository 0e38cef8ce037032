// Package reminders schedules calendar-style alerts with the external
// notification service. The scheduling engine never calls this package; the
// orchestration layer does, after an assignment gains a due date.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// DefaultLeadMinutes is how far ahead of the due moment a reminder fires
// when the user has not configured a lead time (one day).
const DefaultLeadMinutes = 1440

// DefaultMaxAttempts bounds retries of a single schedule call.
const DefaultMaxAttempts = 3

// ErrPermissionDenied reports that the user has not granted the reminder
// permission. Retrying cannot help; the caller must surface it.
var ErrPermissionDenied = errors.New("reminder permission not granted")

// Reminder is a single absolute trigger with a spoken label.
type Reminder struct {
	UserID    string    `json:"user_id"`
	Label     string    `json:"label"`
	TriggerAt time.Time `json:"trigger_at"`
	Timezone  string    `json:"timezone"`
}

// Scheduler is the notification-service contract consumed by the
// orchestration layer.
type Scheduler interface {
	Schedule(ctx context.Context, reminder Reminder) error
}

//go:generate mockgen -source=client.go -destination=../mocks/reminders/mock_scheduler.go -package=mock_reminders Scheduler

// Client schedules reminders over the notification service's HTTP API.
type Client struct {
	httpClient  *resty.Client
	maxAttempts uint
}

// NewClient creates a Client for the notification service at baseURL.
func NewClient(baseURL, apiKey string, maxAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:  client,
		maxAttempts: maxAttempts,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Schedule creates one reminder. Transient failures (5xx, rate limiting,
// network errors) are retried up to the configured attempt count; a 401 or
// 403 maps to ErrPermissionDenied and is not retried.
func (c *Client) Schedule(ctx context.Context, reminder Reminder) error {
	err := retry.Do(
		func() error {
			response, err := c.httpClient.R().
				SetContext(ctx).
				SetBody(reminder).
				Post("/v1/reminders")
			if err != nil {
				return fmt.Errorf("httpClient.Post(/v1/reminders) > %w", err)
			}
			switch response.StatusCode() {
			case http.StatusCreated:
				return nil
			case http.StatusUnauthorized, http.StatusForbidden:
				return ErrPermissionDenied
			default:
				return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
			}
		},
		retry.Attempts(c.maxAttempts),
		retry.Context(ctx),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder %q: %w", reminder.Label, err)
	}
	return nil
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermissionDenied) {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}
