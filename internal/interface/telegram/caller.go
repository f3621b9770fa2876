package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"
)

// CallGateway drives the voice-alert service. Calls are best-effort: the
// gateway reports its own readiness and a failed call never escalates past
// the dispatcher.
type CallGateway struct {
	logger      logger.Logger
	baseURL     string
	token       string
	httpClient  *http.Client
	initialized bool
}

// NewCallGateway creates a new voice-call gateway client
func NewCallGateway(baseURL, token string, log logger.Logger) *CallGateway {
	return &CallGateway{
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Initialize checks the configuration and the gateway health endpoint.
// Voice alerts stay disabled when it returns false.
func (g *CallGateway) Initialize(ctx context.Context) bool {
	if g.baseURL == "" || g.token == "" {
		g.logger.Warn("Caller service not configured, voice alerts disabled")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		g.logger.Error("Failed to build caller health request", "error", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Caller service unreachable, voice alerts disabled", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("Caller service unhealthy, voice alerts disabled", "status", resp.StatusCode)
		return false
	}

	g.initialized = true
	g.logger.Info("Caller service initialized")
	return true
}

// IsInitialized reports whether the voice channel is available
func (g *CallGateway) IsInitialized() bool {
	return g.initialized
}

// CallRecipients rings each recipient in turn. Usernames are preferred over
// numeric ids when present. One failed recipient does not stop the rest.
func (g *CallGateway) CallRecipients(ctx context.Context, userIDs []int64, usernames []string) error {
	if !g.initialized {
		return fmt.Errorf("call gateway not initialized")
	}

	for idx, userID := range userIDs {
		username := ""
		if idx < len(usernames) {
			username = strings.TrimPrefix(usernames[idx], "@")
		}

		if err := g.call(ctx, userID, username, true); err != nil {
			g.logger.Error("Voice call failed", "userId", userID, "username", username, "error", err)
			continue
		}
		g.logger.Info("Call initiated", "userId", userID, "username", username)
	}

	return nil
}

type callRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
}

func (g *CallGateway) call(ctx context.Context, userID int64, username string, retryOnWait bool) error {
	jsonData, err := json.Marshal(callRequest{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("failed to marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/v1/calls", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create call request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send call request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests && retryOnWait {
		// Transient per-recipient rate limit; sleep out the indicated wait
		wait := retryAfter(resp)
		g.logger.Warn("Caller rate limited", "userId", userID, "wait", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		return g.call(ctx, userID, username, false)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("caller service returned status %d: %v", resp.StatusCode, errorBody)
	}

	return nil
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 30 * time.Second
}
