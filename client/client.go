// Package client is a typed HTTP client for the expense API.
package client

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

	"spendbook/api"
	"spendbook/models"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the development backend.
const DefaultBaseURL = "http://localhost:4000"

// ErrInvalidID is returned without any network call for ids that cannot
// name a record.
var ErrInvalidID = errors.New("invalid expense id")

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
	Errors  []string
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		return e.Message + ": " + strings.Join(e.Errors, ", ")
	}
	return e.Message
}

// Client talks to the expense API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// validID rejects the values a careless caller produces from a missing id.
func validID(id string) bool {
	switch strings.TrimSpace(id) {
	case "", "undefined", "null":
		return false
	}
	return true
}

// do sends a JSON request and decodes a JSON response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("API request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		log.Error().Err(apiErr).Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("API request failed")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError uses the body's message when there is one.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	var body api.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}
	return apiErr
}

// Health checks the backend.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var health api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// List fetches every expense, newest first.
func (c *Client) List(ctx context.Context) ([]models.Expense, error) {
	var records []record
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &records); err != nil {
		return nil, err
	}
	expenses := make([]models.Expense, 0, len(records))
	for _, r := range records {
		expenses = append(expenses, r.expense())
	}
	return expenses, nil
}

// Get fetches one expense.
func (c *Client) Get(ctx context.Context, id string) (*models.Expense, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}
	return c.one(ctx, http.MethodGet, "/api/expenses/"+url.PathEscape(id), nil)
}

// Create stores a new expense.
func (c *Client) Create(ctx context.Context, in Input) (*models.Expense, error) {
	return c.one(ctx, http.MethodPost, "/api/expenses", in)
}

// Update changes the given fields of an expense. Nil fields are left as they are.
func (c *Client) Update(ctx context.Context, id string, in Patch) (*models.Expense, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}
	return c.one(ctx, http.MethodPut, "/api/expenses/"+url.PathEscape(id), in)
}

// Delete removes an expense.
func (c *Client) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		log.Error().Str("id", id).Msg("refusing to delete expense without id")
		return ErrInvalidID
	}
	return c.do(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil)
}

// Summary fetches totals for the filter.
func (c *Client) Summary(ctx context.Context, category, month string) (*api.SummaryResponse, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if month != "" {
		q.Set("month", month)
	}
	path := "/api/expenses/summary"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var summary api.SummaryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) one(ctx context.Context, method, path string, in any) (*models.Expense, error) {
	var r record
	if err := c.do(ctx, method, path, in, &r); err != nil {
		return nil, err
	}
	e := r.expense()
	return &e, nil
}
