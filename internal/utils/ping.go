package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingService dials the host behind a URL to verify it accepts TCP
// connections. Used by the container healthcheck, where an HTTP round trip
// would drag in the whole client stack for a liveness probe.
func PingService(serviceURL string, timeout time.Duration) error {
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	address := net.JoinHostPort(parsed.Hostname(), port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingServer checks if the inventory API itself is reachable
func PingServer(serverURL string) error {
	return PingService(serverURL, 1500*time.Millisecond)
}
