// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package transfer

import (
	"context"
	"errors"
	"net"
	"strings"

	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/toeirei/zynq/internal/failure"
)

func errText(err error) string {
	return strings.ToLower(err.Error())
}

// IsConnectionTimeoutError reports whether err looks like a dial or handshake timeout.
func IsConnectionTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := errText(err)
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

// IsConnectionRefusedError reports whether the remote end could not be reached.
func IsConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}
	msg := errText(err)
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no route to host")
}

// IsAuthenticationError reports whether the server rejected every key offered.
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	msg := errText(err)
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "authentication failed") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "public key")
}

// IsHostKeyError reports whether the server's host key was rejected.
func IsHostKeyError(err error) bool {
	if err == nil {
		return false
	}
	var ke *knownhosts.KeyError
	if errors.As(err, &ke) {
		return true
	}
	var re *knownhosts.RevokedError
	if errors.As(err, &re) {
		return true
	}
	msg := errText(err)
	return strings.Contains(msg, "host key") || strings.Contains(msg, "knownhosts:")
}

// ClassifyConnectionError wraps a dial error as a failure.Connection error
// whose message names the likely cause.
func ClassifyConnectionError(host string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case IsHostKeyError(err):
		return failure.Wrap(failure.Connection, err, "host key verification failed for %s", host)
	case IsAuthenticationError(err):
		return failure.Wrap(failure.Connection, err, "authentication failed for %s", host)
	case IsConnectionTimeoutError(err):
		return failure.Wrap(failure.Connection, err, "connection to %s timed out", host)
	case IsConnectionRefusedError(err):
		return failure.Wrap(failure.Connection, err, "connection to %s refused", host)
	default:
		return failure.Wrap(failure.Connection, err, "failed to connect to %s", host)
	}
}
