package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// maxErrorBody limits how much of a failed response body is kept in a StatusError.
const maxErrorBody = 4096

// StatusError reports a response whose status code is not 2xx.
type StatusError struct {
	StatusCode int
	Body       string
	// Retryable is set for statuses the transport retries (429, 5xx gateway errors).
	Retryable bool
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// TimeoutError reports a connect or read timeout.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Timeout lets TimeoutError satisfy net.Error-style checks.
func (e *TimeoutError) Timeout() bool { return true }

// classifyError turns timeouts from the transport into *TimeoutError and
// returns every other error unchanged.
func classifyError(req *http.Request, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	return err
}

// newStatusError drains and closes resp.Body.
func newStatusError(resp *http.Response, retryable bool) *StatusError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		Retryable:  retryable,
	}
}

// CheckStatus returns nil for 2xx responses. Otherwise it closes the body and
// returns a *StatusError describing the failure.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return newStatusError(resp, isRetryableStatus(resp.StatusCode, DefaultRetryConfig().RetryableStatus))
}

// IsTimeout reports whether err was caused by a transport timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
