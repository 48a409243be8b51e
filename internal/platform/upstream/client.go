// Package upstream is the shared HTTP client for third-party APIs.
//
// Each provider gets its own Client so that retries, timeouts and the
// circuit breaker are tracked per provider.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"moving-presurvey-service/internal/platform/logging"
	"moving-presurvey-service/internal/platform/metrics"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Upper bound on response bodies read into memory.
const maxBodyBytes = 8 << 20

// StatusError is an HTTP response with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type Options struct {
	// Per-attempt timeout. Default 10s.
	Timeout time.Duration
	// Attempts including the first. Default 3.
	MaxAttempts int
	// Initial backoff, doubled after each retry. Default 200ms.
	Backoff time.Duration
	// Consecutive failures that open the breaker. Default 5.
	TripAfter uint32
	// Time the breaker stays open before probing. Default 30s.
	OpenTimeout time.Duration
	// Optional transport override (tests).
	HTTPClient *http.Client
}

type Client struct {
	name        string
	session     *http.Client
	breaker     *gobreaker.CircuitBreaker[[]byte]
	maxAttempts int
	backoff     time.Duration
}

func New(name string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 200 * time.Millisecond
	}
	if opts.TripAfter == 0 {
		opts.TripAfter = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	session := opts.HTTPClient
	if session == nil {
		session = &http.Client{Timeout: opts.Timeout}
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)

	tripAfter := opts.TripAfter
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		// Client errors mean the request was wrong, not that the provider is down.
		// A caller that went away says nothing about the provider.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.Code < 500 && se.Code != http.StatusTooManyRequests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("provider", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Client{
		name:        name,
		session:     session,
		breaker:     breaker,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
	}
}

func (c *Client) Name() string { return c.name }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Fetch sends the request built by makeReq, retrying transient failures,
// and returns the response body. makeReq is called once per attempt so
// request bodies can be rebuilt.
func (c *Client) Fetch(ctx context.Context, makeReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, makeReq)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UpstreamRequests.WithLabelValues(c.name, "rejected").Inc()
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		metrics.UpstreamRequests.WithLabelValues(c.name, "failure").Inc()
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}

	metrics.UpstreamRequests.WithLabelValues(c.name, "success").Inc()
	return body, nil
}

// GetJSON issues a GET to rawURL and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	body, err := c.Fetch(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		return req, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, redactURL(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return b, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq(ctx)
		if err != nil {
			return nil, fmt.Errorf("make request: %w", redactURL(err))
		}

		body, err := c.do(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		logging.Ctx(ctx).Debug().Str("provider", c.name).Int("attempt", attempt).Err(err).Msg("retrying upstream request")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// redactURL drops the query string from a *url.Error so API keys passed as
// query parameters never reach error text or logs.
func redactURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
		ue.URL = ue.URL[:i] + "?REDACTED"
	}
	return err
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
