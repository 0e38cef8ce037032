package reminders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Schedule(t *testing.T) {
	reminder := Reminder{
		UserID:    "u1",
		Label:     "Math worksheet is due soon",
		TriggerAt: time.Date(2026, 1, 22, 9, 0, 0, 0, time.UTC),
		Timezone:  "America/New_York",
	}

	tests := []struct {
		name             string
		statuses         []int
		maxAttempts      uint
		expectedRequests int
		wantErr          error
		wantErrContains  string
	}{
		{
			name:             "created on the first attempt",
			statuses:         []int{http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 1,
		},
		{
			name:             "server errors are retried until success",
			statuses:         []int{http.StatusInternalServerError, http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 2,
		},
		{
			name:             "rate limiting is retried",
			statuses:         []int{http.StatusTooManyRequests, http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 2,
		},
		{
			name:             "forbidden is not retried",
			statuses:         []int{http.StatusForbidden, http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 1,
			wantErr:          ErrPermissionDenied,
		},
		{
			name:             "unauthorized is not retried",
			statuses:         []int{http.StatusUnauthorized, http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 1,
			wantErr:          ErrPermissionDenied,
		},
		{
			name:             "client errors are not retried",
			statuses:         []int{http.StatusBadRequest, http.StatusCreated},
			maxAttempts:      3,
			expectedRequests: 1,
			wantErrContains:  "response error 400",
		},
		{
			name:             "attempts are bounded",
			statuses:         []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError},
			maxAttempts:      3,
			expectedRequests: 3,
			wantErrContains:  "response error 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/reminders", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var got Reminder
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, reminder.Label, got.Label)

				status := tt.statuses[len(tt.statuses)-1]
				if requests < len(tt.statuses) {
					status = tt.statuses[requests]
				}
				requests++
				w.WriteHeader(status)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", tt.maxAttempts)
			defer func() {
				_ = client.Close()
			}()

			err := client.Schedule(context.Background(), reminder)
			assert.Equal(t, tt.expectedRequests, requests)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantErrContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTriggerAt(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name        string
		dueDate     string
		dueTime     string
		timezone    string
		leadMinutes int
		expected    time.Time
		wantErr     bool
	}{
		{
			name:        "explicit due time with a day of lead",
			dueDate:     "2026-01-23",
			dueTime:     "15:30",
			timezone:    "America/New_York",
			leadMinutes: DefaultLeadMinutes,
			expected:    time.Date(2026, 1, 22, 15, 30, 0, 0, newYork),
		},
		{
			name:        "missing due time defaults to nine in the morning",
			dueDate:     "2026-01-23",
			dueTime:     "",
			timezone:    "America/New_York",
			leadMinutes: 60,
			expected:    time.Date(2026, 1, 23, 8, 0, 0, 0, newYork),
		},
		{
			name:        "zero lead fires at the due moment",
			dueDate:     "2026-01-23",
			dueTime:     "09:00",
			timezone:    "UTC",
			leadMinutes: 0,
			expected:    time.Date(2026, 1, 23, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "unknown timezone",
			dueDate:  "2026-01-23",
			timezone: "Mars/Olympus_Mons",
			wantErr:  true,
		},
		{
			name:     "invalid due date",
			dueDate:  "someday",
			timezone: "UTC",
			wantErr:  true,
		},
		{
			name:     "invalid due time",
			dueDate:  "2026-01-23",
			dueTime:  "3pm",
			timezone: "UTC",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TriggerAt(tt.dueDate, tt.dueTime, tt.timezone, tt.leadMinutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %s, expected %s", got, tt.expected)
		})
	}
}
