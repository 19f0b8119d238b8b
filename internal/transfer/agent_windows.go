//go:build windows
// +build windows

// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package transfer

import (
	"io"
	"os"

	"github.com/Microsoft/go-winio"
	"github.com/davidmz/go-pageant"
	"golang.org/x/crypto/ssh/agent"
)

const openSSHAgentPipe = `\\.\pipe\openssh-ssh-agent`

// getSSHAgent prefers a Pageant-compatible agent and falls back to the
// OpenSSH agent's named pipe (SSH_AUTH_SOCK or the default pipe). The
// closer is nil for Pageant, which holds no connection between requests.
func getSSHAgent() (agent.Agent, io.Closer) {
	if pageant.Available() {
		return pageant.New(), nil
	}

	pipe := os.Getenv("SSH_AUTH_SOCK")
	if pipe == "" {
		pipe = openSSHAgentPipe
	}
	agentConn, err := winio.DialPipe(pipe, nil)
	if err == nil && agentConn != nil {
		return agent.NewClient(agentConn), agentConn
	}
	return nil, nil
}
