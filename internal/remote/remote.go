// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package remote parses user@host:path push targets.
package remote

import (
	"net"
	"strconv"
	"strings"

	"github.com/toeirei/zynq/internal/failure"
)

// Target is a parsed push destination. Path may be empty, meaning the
// session's default directory.
type Target struct {
	User string
	Host string
	Path string
}

// Parse splits raw into user, host and path.
//
// The text before '@' is the user. The last ':' separates host from path, so
// a path containing ':' survives but a mistyped "host:port" ends up in the
// path. A host in brackets ("user@[fe80::1]:/srv") is taken literally and the
// ':' after ']' separates the path.
func Parse(raw string) (Target, error) {
	at := strings.IndexByte(raw, '@')
	if at < 0 {
		return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: missing '@'", raw)
	}
	user, rest := raw[:at], raw[at+1:]
	if user == "" {
		return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: empty user", raw)
	}

	var host, path string
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: unterminated '['", raw)
		}
		if end+1 >= len(rest) || rest[end+1] != ':' {
			return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: missing ':' after host", raw)
		}
		host, path = rest[1:end], rest[end+2:]
	} else {
		colon := strings.LastIndexByte(rest, ':')
		if colon < 0 {
			return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: missing ':' after host", raw)
		}
		host, path = rest[:colon], rest[colon+1:]
		if strings.ContainsRune(host, '@') {
			return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: more than one '@' before the path", raw)
		}
	}
	if host == "" {
		return Target{}, failure.New(failure.MalformedRemote, "malformed remote %q: empty host", raw)
	}

	return Target{User: user, Host: host, Path: path}, nil
}

// String renders the target in user@host:path form.
func (t Target) String() string {
	host := t.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return t.User + "@" + host + ":" + t.Path
}

// Addr returns the dialable address of the host on port.
func (t Target) Addr(port int) string {
	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}
