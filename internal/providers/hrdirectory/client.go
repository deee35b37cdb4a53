package hrdirectory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ninja-fellowship/internal/domain"
	"ninja-fellowship/internal/httpx"
)

const acceptJSON = "application/json"

// Client talks to the upstream HR directory API.
type Client struct {
	URL        string
	APIKey     string
	AuthScheme string
	HTTP       *http.Client
	Retry      httpx.RetryConfig
}

type Option func(*Client)

// WithAuthScheme prefixes the key in the Authorization header ("Bearer").
// Without it the raw key is sent.
func WithAuthScheme(scheme string) Option {
	return func(c *Client) { c.AuthScheme = strings.TrimSpace(scheme) }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTP.Timeout = d
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.Retry = httpx.WithAttempts(n) }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

func New(url, apiKey string, opts ...Option) *Client {
	tr := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	c := &Client{
		URL:    url,
		APIKey: apiKey,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: tr,
		},
		Retry: httpx.SingleAttempt(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "hrdirectory" }

func (c *Client) authorization() string {
	if c.AuthScheme == "" {
		return c.APIKey
	}
	return c.AuthScheme + " " + c.APIKey
}

// FetchEmployees GETs the employee list. Errors are *httpx.HTTPError for a
// non-2xx answer, *domain.DecodeError for an unusable body, or a wrapped
// transport error.
func (c *Client) FetchEmployees(ctx context.Context) ([]domain.Employee, []byte, error) {
	if strings.TrimSpace(c.URL) == "" {
		return nil, nil, errors.New("hrdirectory: missing upstream url")
	}

	_, body, err := httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", acceptJSON)
			r.Header.Set("Authorization", c.authorization())
			return r, nil
		},
		c.Retry,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("hrdirectory: fetch employees: %w", err)
	}

	emps, err := domain.DecodeEmployees(body)
	if err != nil {
		return nil, nil, fmt.Errorf("hrdirectory: %w", err)
	}
	return emps, body, nil
}
