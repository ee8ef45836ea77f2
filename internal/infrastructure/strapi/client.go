// Package strapi is the outbound HTTP client for the Strapi content API.
package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 2048
)

// APIError is returned for a non-2xx response.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strapi: %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the CMS.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client implements ports.CMSClient over net/http.
type Client struct {
	baseURL  string
	mediaURL string
	token    string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	logger   *logrus.Logger
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ports.CMSClient = (*Client)(nil)

// ClientDeps carries the optional collaborators of the client.
type ClientDeps struct {
	HTTPClient *http.Client
	Logger     *logrus.Logger
	Requests   *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

func NewClient(cfg *config.CMSConfig, deps ClientDeps) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("strapi: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("strapi: invalid base URL: %w", err)
	}
	httpClient := deps.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		baseURL:  base,
		mediaURL: strings.TrimSuffix(base, "/api"),
		token:    cfg.Token,
		http:     httpClient,
		logger:   deps.Logger,
		requests: deps.Requests,
		duration: deps.Duration,
	}
	c.breaker = newBreaker(cfg, deps.Logger)
	return c, nil
}

func newBreaker(cfg *config.CMSConfig, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	minRequests := cfg.BreakerMinRequests
	threshold := cfg.BreakerFailureThreshold
	if threshold <= 0 {
		threshold = 0.8
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "strapi",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
			}
		},
		// 4xx means the CMS answered; only transport failures and 5xx count.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// resource is the metrics label for path: its first segment.
func resource(path string) string {
	p := strings.TrimLeft(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	res := resource(path)
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.do(ctx, path, query, out)
	})
	if c.duration != nil {
		c.duration.WithLabelValues(res).Observe(time.Since(start).Seconds())
	}
	outcome := "ok"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	case err != nil:
		outcome = "error"
	}
	if c.requests != nil {
		c.requests.WithLabelValues(res, outcome).Inc()
	}
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"path": path, "outcome": outcome}).WithError(err).Error("CMS request failed")
		}
		return fmt.Errorf("strapi: GET %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// MediaURL makes an upload path absolute against the CMS host.
func (c *Client) MediaURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.mediaURL + path
}
