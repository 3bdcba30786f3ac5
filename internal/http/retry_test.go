package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialDelay = time.Millisecond
	return cfg
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	for _, status := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(status, cfg.RetryableStatus) {
			t.Errorf("status %d should be retryable", status)
		}
	}
	for _, status := range []int{200, 400, 403, 404, 456} {
		if isRetryableStatus(status, cfg.RetryableStatus) {
			t.Errorf("status %d should not be retryable", status)
		}
	}
	for _, m := range []string{"GET", "HEAD", "OPTIONS", "POST"} {
		if !isRetryableMethod(m, cfg.RetryableMethod) {
			t.Errorf("method %s should be retryable", m)
		}
	}
	if isRetryableMethod("PUT", cfg.RetryableMethod) {
		t.Error("PUT should not be retryable")
	}
}

func TestDoWithRetry_RecoversFromTransientStatus(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	resp, err := DoWithRetry(ts.Client(), req, fastRetryConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestDoWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	_, err := DoWithRetry(ts.Client(), req, fastRetryConfig())
	if err == nil {
		t.Fatal("expected error after retries")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || !statusErr.Retryable {
		t.Errorf("got %+v, want retryable 502", statusErr)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", got)
	}
}

func TestDoWithRetry_TerminalStatusNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "Wrong key")
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	resp, err := DoWithRetry(ts.Client(), req, fastRetryConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}

	err = CheckStatus(resp)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("CheckStatus() = %v, want *StatusError", err)
	}
	if statusErr.Retryable {
		t.Error("403 should not be marked retryable")
	}
	if statusErr.Body != "Wrong key" {
		t.Errorf("Body = %q, want 'Wrong key'", statusErr.Body)
	}
}

func TestDoWithRetry_ReplaysPostBody(t *testing.T) {
	var calls int32
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL, strings.NewReader("text=hello"))
	resp, err := DoWithRetry(ts.Client(), req, fastRetryConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if len(bodies) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(bodies))
	}
	for i, b := range bodies {
		if b != "text=hello" {
			t.Errorf("request %d body = %q, want 'text=hello'", i+1, b)
		}
	}
}

func TestDoWithRetry_MethodNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPut, ts.URL, nil)
	_, err := DoWithRetry(ts.Client(), req, fastRetryConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDoWithRetry_ReadTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()
	defer close(release)

	cfg := DefaultClientConfig()
	cfg.ReadTimeout = 50 * time.Millisecond
	client := NewPooledClient(cfg)

	retry := fastRetryConfig()
	retry.MaxRetries = 0

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	_, err := DoWithRetry(client, req, retry)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("error = %v, want *TimeoutError", err)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Error("timeout must not be reported as a status error")
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"abc", 0},
		{"-1", 0},
		{"2", 2 * time.Second},
		{"3600", 30 * time.Second},
	}
	for _, tt := range tests {
		resp := &http.Response{Header: http.Header{}}
		if tt.header != "" {
			resp.Header.Set("Retry-After", tt.header)
		}
		if got := retryAfter(resp); got != tt.want {
			t.Errorf("retryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
