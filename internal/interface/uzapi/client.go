package uzapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/infrastructure/config"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://app.uz.gov.ua/api/"
	requestTimeout = 10 * time.Second

	// Non-standard status the upstream uses to signal session invalidation
	statusSessionInvalid = 441
)

// Client wraps HTTP calls to the UZ booking API. It owns the opaque session
// identity attached to every request. Callers are expected to be sequential;
// session rotation is not guarded by a lock.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessionID  string
	logger     logger.Logger
}

// NewClient creates a booking API client with a fresh session identity
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	transport := &http.Transport{}
	if cfg.ProxyEnabled && cfg.ProxyHost != "" {
		proxyURL := &url.URL{
			Scheme: cfg.ProxyType,
			Host:   fmt.Sprintf("%s:%d", cfg.ProxyHost, cfg.ProxyPort),
		}
		if cfg.ProxyUser != "" {
			proxyURL.User = url.UserPassword(cfg.ProxyUser, cfg.ProxyPass)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		log.Info("Proxy enabled", "type", cfg.ProxyType, "host", cfg.ProxyHost, "port", cfg.ProxyPort)
	}

	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		sessionID: uuid.NewString(),
		logger:    log,
	}
}

// regenerateSessionID rotates the session identity after a 441 response
func (c *Client) regenerateSessionID() {
	oldSession := c.sessionID
	c.sessionID = uuid.NewString()
	c.logger.Info("Regenerated session ID",
		"old", oldSession[:8],
		"new", c.sessionID[:8])
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36")
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "uk,ru-RU;q=0.9,ru;q=0.8,en-US;q=0.7,en;q=0.6")
	h.Set("Origin", "https://booking.uz.gov.ua")
	h.Set("Referer", "https://booking.uz.gov.ua/")
	h.Set("X-Client-Locale", "uk")
	h.Set("X-Session-Id", c.sessionID)
	h.Set("X-User-Agent", "UZ/2 Web/1 User/guest")
	return h
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.headers()
	return c.httpClient.Do(req)
}

// SearchStations looks up stations by name. An empty result is a valid
// "no match", not an error.
func (c *Client) SearchStations(ctx context.Context, searchQuery string) ([]entity.Station, error) {
	query := url.Values{}
	query.Set("search", searchQuery)

	resp, err := c.get(ctx, "stations", query)
	if err != nil {
		return nil, &TransportError{Operation: "stations", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Station search failed", "status", resp.StatusCode, "query", searchQuery)
		return nil, &UpstreamError{Operation: "stations", StatusCode: resp.StatusCode}
	}

	var stations []entity.Station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations response: %w", err)
	}

	c.logger.Info("Found stations", "count", len(stations), "query", searchQuery)
	return stations, nil
}

// FetchTrips queries trips for one (route, date) combination. It returns
// (nil, nil) when the upstream degrades the call (non-200 after the one
// allowed session retry); only transport failure surfaces as an error.
func (c *Client) FetchTrips(ctx context.Context, stationFromID, stationToID int64, date string, withTransfers bool) (*entity.TripSet, error) {
	return c.fetchTrips(ctx, stationFromID, stationToID, date, withTransfers, true)
}

func (c *Client) fetchTrips(ctx context.Context, stationFromID, stationToID int64, date string, withTransfers bool, retryOn441 bool) (*entity.TripSet, error) {
	query := url.Values{}
	query.Set("station_from_id", strconv.FormatInt(stationFromID, 10))
	query.Set("station_to_id", strconv.FormatInt(stationToID, 10))
	if withTransfers {
		query.Set("with_transfers", "1")
	} else {
		query.Set("with_transfers", "0")
	}
	query.Set("date", date)

	resp, err := c.get(ctx, "v3/trips", query)
	if err != nil {
		return nil, &TransportError{Operation: "trips", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var trips entity.TripSet
		if err := json.NewDecoder(resp.Body).Decode(&trips); err != nil {
			c.logger.Error("Failed to decode trips response", "date", date, "error", err)
			return nil, nil
		}
		c.logger.Info("Fetched trips",
			"date", date,
			"from", stationFromID,
			"to", stationToID,
			"direct", len(trips.Direct))
		return &trips, nil

	case resp.StatusCode == statusSessionInvalid && retryOn441:
		c.logger.Warn("Got 441, regenerating session ID and retrying")
		c.regenerateSessionID()
		// One retry only; the flag is cleared on the recursive attempt
		return c.fetchTrips(ctx, stationFromID, stationToID, date, withTransfers, false)

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		c.logger.Error("Trip fetch failed",
			"status", resp.StatusCode,
			"date", date,
			"body", string(body))
		return nil, nil
	}
}
