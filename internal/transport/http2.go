// internal/transport/http2.go
package transport

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Config is minimal HTTP client config.
type Config struct {
	Timeout time.Duration
}

// BuildHTTP2Client creates an HTTP client that negotiates HTTP/2 over TLS
// and falls back to HTTP/1.1 for plain-text endpoints.
func BuildHTTP2Client(cfg Config) (*http.Client, error) {
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("transport: timeout must be > 0")
	}

	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout: cfg.Timeout,
		IdleConnTimeout:     90 * time.Second,
	}

	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("transport: enable http2: %w", err)
	}

	return &http.Client{
		Transport: t,
		Timeout:   cfg.Timeout,
	}, nil
}
