package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/pkg/errors"
)

// Client - HTTP client for the supplier draft service, the source of truth
// for activities and booking options. Every wizard commit is one round trip
// through here; the supplier either accepts the slice or rejects it with a
// message that is surfaced verbatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewClient(cfg *config.SupplierConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// envelope - the supplier's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do executes one request and decodes the supplier envelope. A 401 means the
// merchant session is gone and the caller must re-authenticate; transport
// and 5xx failures are reported as supplier unavailability.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Supplier request failed", zap.String("url", url), zap.Error(err))
		return nil, errors.ErrSupplierUnavailable
	}
	defer resp.Body.Close()

	c.logger.Debug("Supplier request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.ErrSessionExpired
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.ErrDraftNotFound
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("Supplier returned server error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)))
		return nil, errors.ErrSupplierUnavailable
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Error("Failed to decode supplier response", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to decode supplier response: %w", err)
	}
	return &env, nil
}

// fetch executes a GET whose envelope must be successful and decodes its
// data into out.
func (c *Client) fetch(ctx context.Context, path string, out interface{}) error {
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		if env.Message != "" {
			return errors.ErrCommitRejected.WithMessage(env.Message)
		}
		return errors.ErrCommitRejected
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode supplier data: %w", err)
	}
	return nil
}
