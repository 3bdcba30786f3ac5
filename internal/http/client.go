// Package http provides HTTP client utilities with connection pooling and retry logic.
package http

import (
	"net"
	"net/http"
	"time"

	"deepl-desktop/internal/config"
)

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the wait for response headers after the request is written.
	ReadTimeout         time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// DefaultClientConfig returns the default HTTP client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectTimeout:      config.HTTPConnectTimeout,
		ReadTimeout:         config.HTTPReadTimeout,
		MaxIdleConns:        config.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: config.HTTPMaxIdleConnsPerHost,
		IdleConnTimeout:     config.HTTPIdleConnTimeout,
	}
}

// NewPooledClient creates an HTTP client with connection pooling.
// There is no overall client timeout so that streamed downloads are not cut off;
// the dialer and response-header timeouts bound each call instead.
func NewPooledClient(cfg ClientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   cfg.ConnectTimeout,
			ResponseHeaderTimeout: cfg.ReadTimeout,
			MaxIdleConns:          cfg.MaxIdleConns,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
		},
	}
}

// NewDefaultClient creates an HTTP client with default pooling settings.
func NewDefaultClient() *http.Client {
	return NewPooledClient(DefaultClientConfig())
}
