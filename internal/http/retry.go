package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"deepl-desktop/internal/config"
)

// RetryConfig configures retry behavior for HTTP requests.
type RetryConfig struct {
	// MaxRetries is the number of attempts made after the first one.
	MaxRetries      int
	InitialDelay    time.Duration
	BackoffFactor   float64
	RetryableStatus []int    // HTTP status codes that should trigger a retry
	RetryableMethod []string // HTTP methods that may be replayed
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    config.DefaultMaxRetries,
		InitialDelay:  config.DefaultRetryDelayBase,
		BackoffFactor: config.DefaultBackoffFactor,
		RetryableStatus: []int{
			http.StatusTooManyRequests,     // 429
			http.StatusInternalServerError, // 500
			http.StatusBadGateway,          // 502
			http.StatusServiceUnavailable,  // 503
			http.StatusGatewayTimeout,      // 504
		},
		RetryableMethod: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
		},
	}
}

// isRetryableStatus checks if a status code should trigger a retry.
func isRetryableStatus(status int, retryable []int) bool {
	for _, s := range retryable {
		if s == status {
			return true
		}
	}
	return false
}

func isRetryableMethod(method string, retryable []string) bool {
	for _, m := range retryable {
		if m == method {
			return true
		}
	}
	return false
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > config.MaxRetryAfter {
		d = config.MaxRetryAfter
	}
	return d
}

// DoWithRetry executes an HTTP request with exponential backoff retry.
func DoWithRetry(client *http.Client, req *http.Request, cfg RetryConfig) (*http.Response, error) {
	return DoWithRetryContext(context.Background(), client, req, cfg)
}

// DoWithRetryContext executes an HTTP request with retry and context support.
// Bodies are replayed through req.GetBody, which http.NewRequest sets for
// bytes.Reader, bytes.Buffer and strings.Reader bodies. A request whose body
// cannot be replayed is sent once.
//
// A response with a non-retryable status is returned as is; use CheckStatus
// to turn it into an error. Retryable statuses that survive every attempt
// come back as *StatusError.
func DoWithRetryContext(ctx context.Context, client *http.Client, req *http.Request, cfg RetryConfig) (*http.Response, error) {
	attempts := cfg.MaxRetries + 1
	if !isRetryableMethod(req.Method, cfg.RetryableMethod) || (req.Body != nil && req.Body != http.NoBody && req.GetBody == nil) {
		attempts = 1
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		// Check context before making request
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reqClone := req.Clone(ctx)
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("reset request body: %w", err)
			}
			reqClone.Body = body
		}

		wait := delay
		resp, err := client.Do(reqClone)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = classifyError(req, err)
		} else if isRetryableStatus(resp.StatusCode, cfg.RetryableStatus) {
			if ra := retryAfter(resp); ra > wait {
				wait = ra
			}
			lastErr = newStatusError(resp, true)
		} else {
			// Success or non-retryable error
			return resp, nil
		}

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		}
	}

	if attempts == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed after %d retries: %w", attempts-1, lastErr)
}
