// Package netutil binds the controller listener.
package netutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
)

// ErrNoAddress is returned when neither the preferred address nor any
// candidate can be bound.
var ErrNoAddress = errors.New("no available bind address")

// Listen binds preferred, or the first bindable candidate when autoFallback
// is set. The listener is returned open so the address cannot be taken
// between selection and serving.
func Listen(preferred string, candidates []string, autoFallback bool) (net.Listener, error) {
	if preferred != "" {
		ln, err := net.Listen("tcp", preferred)
		if err == nil {
			return ln, nil
		}
		if !autoFallback {
			return nil, fmt.Errorf("bind %s: %w", preferred, err)
		}
		slog.Warn("preferred bind address unavailable, trying candidates", "addr", preferred, "error", err)
	}

	for _, addr := range candidates {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			slog.Debug("candidate bind address unavailable", "addr", addr, "error", err)
			continue
		}
		return ln, nil
	}
	return nil, ErrNoAddress
}

// ParseCandidates splits a comma separated list. Bare ports are bound on the
// host of preferred.
func ParseCandidates(raw, preferred string) []string {
	host := "127.0.0.1"
	if h, _, err := net.SplitHostPort(preferred); err == nil && h != "" {
		host = h
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, ":") {
			part = net.JoinHostPort(host, part)
		}
		out = append(out, part)
	}
	return out
}
