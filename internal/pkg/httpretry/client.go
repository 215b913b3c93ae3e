// Package httpretry wraps an HTTP client with bounded retries for the
// generation backends. Rate limits and transient 5xx responses are
// retried with jittered exponential backoff; client errors are not.
package httpretry

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"time"
)

const (
	maxRetries = 2
	baseDelay  = 1 * time.Second
	maxDelay   = 10 * time.Second
	minDelay   = 100 * time.Millisecond
)

// HTTPDoer is satisfied by *http.Client and *RetryClient.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryClient retries transient failures before giving up. The final
// response is returned as-is so callers can classify the status and body.
type RetryClient struct {
	client HTTPDoer
}

// NewRetryClient wraps client. A nil client gets a 30s-timeout default.
func NewRetryClient(client HTTPDoer) *RetryClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RetryClient{client: client}
}

// Do sends the request, retrying on 429/500/502/503/504 and on network
// errors. Context cancellation stops the loop immediately. Requests with
// a body must carry GetBody (http.NewRequest sets it for byte readers).
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("reset request body: %w", err)
				}
				req.Body = body
			}

			delay := backoff(attempt)
			log.Printf("[httpretry] attempt %d/%d for %s %s after %s", attempt, maxRetries, req.Method, req.URL.Host, delay)

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			}
		}

		resp, err := rc.client.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}

		if !retryable(resp.StatusCode) || attempt == maxRetries {
			return resp, nil
		}

		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("retryable status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return nil, lastErr
}

// backoff is exponential with full jitter, floored at minDelay.
func backoff(attempt int) time.Duration {
	d := float64(baseDelay) * math.Pow(2, float64(attempt-1))
	if d > float64(maxDelay) {
		d = float64(maxDelay)
	}
	jittered := time.Duration(rand.Float64() * d)
	if jittered < minDelay {
		jittered = minDelay
	}
	return jittered
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
