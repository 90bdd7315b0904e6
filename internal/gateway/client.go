// Package gateway implements wizard.Gateway over the preferences HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"tripwise/internal/models/response_models"
	"tripwise/internal/preferences"
	"tripwise/internal/wizard"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrPersistence     = errors.New("persistence failure")
)

// StatusError is returned for non-2xx responses that are not auth failures.
type StatusError struct {
	StatusCode int
	Message    string
	TraceID    string
}

func (e *StatusError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("server returned %d: %s (trace %s)", e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ wizard.Gateway = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API at baseURL, authenticating with a bearer
// token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load returns the saved document. A missing document is not an error.
func (c *Client) Load(ctx context.Context) (preferences.Document, error) {
	var resp response_models.PreferenceResponse
	err := c.do(ctx, http.MethodGet, "/preferences", nil, &resp)
	var serr *StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
		return preferences.Document{}, nil
	}
	if err != nil {
		return preferences.Document{}, err
	}
	return resp.Preferences, nil
}

func (c *Client) Save(ctx context.Context, doc preferences.Document) (preferences.Document, error) {
	var resp response_models.PreferenceResponse
	if err := c.do(ctx, http.MethodPut, "/preferences", doc, &resp); err != nil {
		return preferences.Document{}, err
	}
	c.logger.Debug("Preferences saved", zap.Int64("version", resp.Version))
	return resp.Preferences, nil
}

func (c *Client) SaveDraft(ctx context.Context, doc preferences.Document) error {
	return c.do(ctx, http.MethodPost, "/preferences/draft", doc, nil)
}

// LoadDraft returns the server-side draft, if any.
func (c *Client) LoadDraft(ctx context.Context) (preferences.Document, bool, error) {
	var resp response_models.DraftResponse
	err := c.do(ctx, http.MethodGet, "/preferences/draft", nil, &resp)
	var serr *StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
		return preferences.Document{}, false, nil
	}
	if err != nil {
		return preferences.Document{}, false, err
	}
	return resp.Preferences, true, nil
}

func (c *Client) Delete(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/preferences", nil, nil)
	var serr *StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

// Validate asks the server to check doc without storing it.
func (c *Client) Validate(ctx context.Context, doc preferences.Document) (*response_models.ValidationResult, error) {
	var resp response_models.ValidationResult
	body := map[string]preferences.Document{"preferences": doc}
	if err := c.do(ctx, http.MethodPost, "/preferences/validate", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrPersistence, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrPersistence, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrPersistence, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthenticated, env.Message)
	}
	if rerr := rejection(resp.StatusCode, env); rerr != nil {
		return rerr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %w", ErrPersistence, &StatusError{StatusCode: resp.StatusCode, Message: msg, TraceID: env.TraceID})
	}
	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: decode response: %w", ErrPersistence, decodeErr)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode response data: %w", ErrPersistence, err)
	}
	return nil
}

// rejection turns a server-side validation failure back into the typed
// preferences error it started as.
func rejection(status int, env envelope) error {
	if status != http.StatusBadRequest && status != http.StatusUnprocessableEntity {
		return nil
	}
	var detail struct {
		Field  string   `json:"field"`
		Rule   string   `json:"rule"`
		Fields []string `json:"fields"`
	}
	if len(env.Data) == 0 || json.Unmarshal(env.Data, &detail) != nil {
		return nil
	}
	switch {
	case status == http.StatusBadRequest && detail.Field != "":
		return &preferences.ValidationError{Field: detail.Field, Message: env.Message}
	case status == http.StatusUnprocessableEntity && detail.Rule != "":
		return &preferences.ConflictError{Rule: detail.Rule, Fields: detail.Fields, Message: env.Message}
	}
	return nil
}
