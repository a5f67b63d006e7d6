// Package rateclient talks to the rate service over HTTP.
package rateclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codecrafters/effzins/internal/model"
	"go.uber.org/zap"
)

// ErrMissingRate is returned when a 2xx response carries no zinssatz.
var ErrMissingRate = errors.New("rateclient: response has no zinssatz")

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rateclient: service returned status %d", e.StatusCode)
}

// Client implements model.RateCalculator against a remote endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the given endpoint, falling back to
// model.DefaultEndpoint when empty.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// wireResponse keeps zinssatz as a pointer so an absent field is detectable.
type wireResponse struct {
	AktuellerZinssatz float64  `json:"aktuellerZinssatz"`
	PeriodenZinssatz  float64  `json:"periodenZinssatz"`
	Zinssatz          *float64 `json:"zinssatz"`
}

// Calculate posts req and decodes the three interest factors.
func (c *Client) Calculate(ctx context.Context, req model.RateRequest) (model.RateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return model.RateResponse{}, fmt.Errorf("rateclient: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.RateResponse{}, fmt.Errorf("rateclient: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("rate request failed",
			zap.String("op", "rateclient.calculate"),
			zap.String("endpoint", c.endpoint),
			zap.Error(err))
		return model.RateResponse{}, fmt.Errorf("rateclient: send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RateResponse{}, fmt.Errorf("rateclient: read response: %w", err)
	}

	c.logger.Debug("rate request done",
		zap.String("op", "rateclient.calculate"),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.RateResponse{}, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return model.RateResponse{}, fmt.Errorf("rateclient: unmarshal response: %w", err)
	}
	if wire.Zinssatz == nil {
		return model.RateResponse{}, ErrMissingRate
	}

	return model.RateResponse{
		AktuellerZinssatz: wire.AktuellerZinssatz,
		PeriodenZinssatz:  wire.PeriodenZinssatz,
		Zinssatz:          *wire.Zinssatz,
	}, nil
}

var _ model.RateCalculator = (*Client)(nil)
