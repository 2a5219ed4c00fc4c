// Package client talks to the joke API over HTTP and keeps the per-session
// state a front end needs: the current joke, a loading flag and favorites.
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
	"strconv"
	"strings"
	"time"

	"github.com/sakif/jokebox/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string // "validation_error", "not_found", "internal_error"
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jokebox: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("jokebox: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client calls the /api endpoints of one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch asks for count jokes, optionally from category. The server answers
// with a bare object when one joke was requested and an array otherwise;
// Fetch always returns a slice.
func (c *Client) Fetch(ctx context.Context, category string, count int) ([]model.Joke, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}

	u := c.baseURL + "/api/jokes"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &raw); err != nil {
		return nil, err
	}
	return decodeJokes(raw)
}

// Random fetches a single joke from any category.
func (c *Client) Random(ctx context.Context) (*model.Joke, error) {
	jokes, err := c.Fetch(ctx, "", 1)
	if err != nil {
		return nil, err
	}
	if len(jokes) == 0 {
		return nil, errors.New("jokebox: empty response")
	}
	return &jokes[0], nil
}

// Submit adds a joke. An empty category lets the server apply its default.
func (c *Client) Submit(ctx context.Context, text, category string) (*model.Joke, error) {
	payload := map[string]string{"text": text}
	if category != "" {
		payload["category"] = category
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("jokebox: encoding joke: %w", err)
	}

	var joke model.Joke
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/jokes", body, http.StatusCreated, &joke); err != nil {
		return nil, err
	}
	return &joke, nil
}

// Categories lists the categories the server knows, with joke counts.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/categories", nil, http.StatusOK, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, want int, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("jokebox: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jokebox: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Code = e.Error
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jokebox: decoding response: %w", err)
	}
	return nil
}

func decodeJokes(raw json.RawMessage) ([]model.Joke, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jokes []model.Joke
		if err := json.Unmarshal(trimmed, &jokes); err != nil {
			return nil, fmt.Errorf("jokebox: decoding jokes: %w", err)
		}
		return jokes, nil
	}

	var joke model.Joke
	if err := json.Unmarshal(trimmed, &joke); err != nil {
		return nil, fmt.Errorf("jokebox: decoding joke: %w", err)
	}
	return []model.Joke{joke}, nil
}
