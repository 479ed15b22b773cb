package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// resilientClient wraps outbound provider calls with retries, exponential
// backoff and a circuit breaker, so one flaky upstream cannot stall the
// dashboard or burn through a rate limit.
type resilientClient struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func newResilientClient(client *http.Client, name string) *resilientClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &resilientClient{
		client:          client,
		circuit:         cb,
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

// getJSON fetches u and decodes the response body into out, retrying
// transient failures. Rate limiting and 5xx responses count against the
// circuit breaker; an open circuit fails fast without touching the network.
func (c *resilientClient) getJSON(ctx context.Context, u string, out any) error {
	if c.client == nil {
		return errNoHTTPClient
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return fmt.Errorf("unexpected result type from circuit breaker")
			}
			decodeErr := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return decodeErr
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.maxRetries {
			return lastErr
		}

		delay := c.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.maxInterval > 0 && delay > c.maxInterval {
			delay = c.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// next attempt
		}

		attempt++
	}
}
