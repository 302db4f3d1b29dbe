// Package httpx wraps outbound provider calls with a circuit breaker and a
// client-side rate limiter. Failures are terminal by default: the retry
// budget is zero and every error is surfaced to the caller, which matches
// the app's explicit re-trigger-on-user-action model.
package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

var (
	// ErrCircuitOpen is returned while the breaker is refusing calls.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrRateLimited is returned when the outbound limiter would block
	// longer than the request context allows.
	ErrRateLimited = errors.New("outbound rate limit exceeded")
)

// ClientConfig holds configuration for the outbound client.
type ClientConfig struct {
	// Name identifies this client for breaker naming.
	Name string

	// Timeout is the per-request timeout. Default: 10 seconds.
	Timeout time.Duration

	// MaxRetries is the retry budget for transient failures. Default: 0,
	// every failure is terminal for its request.
	MaxRetries uint64

	// RetryInterval is the initial backoff interval when MaxRetries > 0.
	// Default: 100ms.
	RetryInterval time.Duration

	// RequestsPerSecond caps outbound call rate. Default: 10.
	RequestsPerSecond float64

	// Burst is the limiter burst size. Default: 5.
	Burst int
}

// Client is the resilient HTTP client used for all provider calls.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	limiter    *rate.Limiter
	config     ClientConfig
}

// NewClient creates a new outbound client with defaults filled in.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = 100 * time.Millisecond
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		config:     cfg,
	}
}

// Do executes the request through the limiter and breaker. A 5xx response
// counts as a breaker failure but is still returned to the caller when the
// retry budget (if any) is exhausted.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, ErrRateLimited
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.RetryInterval
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, doErr := c.httpClient.Do(req.Clone(ctx))
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}
		lastResp = resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}
	return lastResp, nil
}

// State returns the breaker state, exposed for tests and diagnostics.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// ServerError represents an HTTP 5xx response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}
