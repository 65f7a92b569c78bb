package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokenSource supplies the bearer token injected into outbound requests.
// Returning an empty string sends the request unauthenticated.
type TokenSource func() string

// Config configures the HTTP client for the booking backend.
type Config struct {
	BaseURL     string
	TokenSource TokenSource
	HTTPClient  *http.Client
}

// Client talks to the hotel booking REST backend. Failures propagate to the
// caller untouched: no retries, no backoff.
type Client struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
}

// New builds a client for the given backend.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("hotelapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		tokens:  cfg.TokenSource,
		client:  httpClient,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, target any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("hotelapi: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("hotelapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hotelapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("hotelapi: decode response: %w", err)
	}
	return nil
}

// errorEnvelope matches the backend's failure payload shape.
type errorEnvelope struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func decodeError(resp *http.Response) error {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	var envelope errorEnvelope
	_ = json.Unmarshal(buf.Bytes(), &envelope)
	if len(envelope.Errors) > 0 {
		return &ValidationError{
			Status:  resp.StatusCode,
			Message: envelope.Message,
			Fields:  envelope.Errors,
		}
	}
	return &StatusError{
		Status:  resp.StatusCode,
		Message: envelope.Message,
		Body:    buf.String(),
	}
}
