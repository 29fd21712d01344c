// Package api is a Go client for the GeoCortex REST surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/pkg/logger"
	"geocortex/pkg/nominatim"

	"golang.org/x/time/rate"
)

const (
	defaultMaxRetries = 5
	defaultRetryWait  = 250 * time.Millisecond
	maxRetryWait      = 30 * time.Second
)

// Client talks to one API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryWait  time.Duration
}

type Option func(*Client)

// WithRateLimit paces requests to perMinute with the given burst, so long
// row-by-row uploads stay under the server's per-client limit.
func WithRateLimit(perMinute float64, burst int) Option {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perMinute/60), max(1, burst))
		}
	}
}

// WithRetries sets how many times a 429 answer is retried and the wait used
// when the server sends no Retry-After.
func WithRetries(n int, wait time.Duration) Option {
	return func(c *Client) {
		c.maxRetries, c.retryWait = n, wait
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: defaultMaxRetries,
		retryWait:  defaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Detail     string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d %s: %s (%s)", e.StatusCode, e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the server's error code back to the shared sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case apperrors.ErrCodeMissingAddress:
		return apperrors.ErrMissingAddress
	case apperrors.ErrCodeStoreUnavailable:
		return apperrors.ErrStoreUnavailable
	case apperrors.ErrCodeNotFound:
		return apperrors.ErrNotFound
	case apperrors.ErrCodeInvalidID:
		return apperrors.ErrInvalidID
	case apperrors.ErrCodeUpstreamGeocode:
		return apperrors.ErrUpstreamGeocode
	case apperrors.ErrCodeInvalidParameters:
		return apperrors.ErrInvalidParameters
	case apperrors.ErrCodeRateLimited:
		return apperrors.ErrRateLimited
	}
	return nil
}

// do sends one request, retrying while the server answers 429.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = data
	}

	for attempt := 0; ; attempt++ {
		err := c.attempt(ctx, method, path, payload, dest)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return err
		}
		wait := apiErr.RetryAfter
		if wait <= 0 {
			wait = c.retryWait * time.Duration(attempt+1)
		}
		wait = min(wait, maxRetryWait)
		logger.GlobalLogger.Debugf("Rate limited on %s %s, retrying in %v (attempt %d)", method, path, wait, attempt+1)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, dest interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GlobalLogger.Debugf("Request failed: %s %s: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
		}
		var envelope struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
				Detail  string `json:"detail"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
			apiErr.Detail = envelope.Error.Detail
		}
		return apiErr
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Create posts one raw row and returns the stored record.
func (c *Client) Create(ctx context.Context, row models.RawRow) (*models.PropertyRecord, error) {
	var record models.PropertyRecord
	if err := c.do(ctx, http.MethodPost, "/api/address", row, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Insert stores an already normalized record and sets its ID.
func (c *Client) Insert(ctx context.Context, record *models.PropertyRecord) error {
	stored, err := c.Create(ctx, record.ToRow())
	if err != nil {
		return err
	}
	record.ID = stored.ID
	return nil
}

func (c *Client) List(ctx context.Context) ([]*models.PropertyRecord, error) {
	var records []*models.PropertyRecord
	if err := c.do(ctx, http.MethodGet, "/api/address", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Get(ctx context.Context, id string) (*models.PropertyRecord, error) {
	var record models.PropertyRecord
	if err := c.do(ctx, http.MethodGet, "/api/address/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) Delete(ctx context.Context, id string) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/address/"+url.PathEscape(id), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/address", nil, nil)
}

// GeocodeResult is the typed form of GET /api/geocode/:id.
type GeocodeResult struct {
	Address string            `json:"address"`
	Geocode []nominatim.Place `json:"geocode"`
}

func (c *Client) Geocode(ctx context.Context, id string) (*GeocodeResult, error) {
	var result GeocodeResult
	if err := c.do(ctx, http.MethodGet, "/api/geocode/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Batch(ctx context.Context, rows []models.RawRow) (*models.BatchResult, error) {
	var result models.BatchResult
	if err := c.do(ctx, http.MethodPost, "/api/address/batch", rows, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
