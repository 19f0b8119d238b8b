// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package transfer opens an authenticated SSH connection with an SFTP
// subsystem and copies local files into one remote directory.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/toeirei/zynq/internal/failure"
	"github.com/toeirei/zynq/internal/logging"
	"github.com/toeirei/zynq/internal/remote"
	"github.com/toeirei/zynq/internal/sshkey"
)

const (
	// DefaultPort is used when Options.Port is zero.
	DefaultPort = 22
	// DefaultTimeout bounds the TCP dial plus the SSH handshake.
	DefaultTimeout = 30 * time.Second
)

// Options controls how a Session is established.
type Options struct {
	Port    int
	Timeout time.Duration

	// KnownHosts is the OpenSSH known_hosts file used to verify the server.
	KnownHosts string
	// StrictHostKey rejects servers that cannot be verified against KnownHosts.
	StrictHostKey bool
	// InsecureIgnoreHostKey disables host key verification entirely.
	InsecureIgnoreHostKey bool
	// UseAgent also offers the signers of a running SSH agent, after the keys.
	UseAgent bool
}

// DefaultOptions returns Options with the default port and timeout.
func DefaultOptions() Options {
	return Options{Port: DefaultPort, Timeout: DefaultTimeout}
}

// sshClientIface is the part of *ssh.Client a Session needs.
type sshClientIface interface {
	Close() error
}

// sftpRaw is the part of *sftp.Client a Session needs.
type sftpRaw interface {
	Create(path string) (io.WriteCloser, error)
	Stat(path string) (os.FileInfo, error)
	Getwd() (string, error)
	Close() error
}

type sftpAdapter struct {
	c *sftp.Client
}

func (a *sftpAdapter) Create(p string) (io.WriteCloser, error) { return a.c.Create(p) }
func (a *sftpAdapter) Stat(p string) (os.FileInfo, error)      { return a.c.Stat(p) }
func (a *sftpAdapter) Getwd() (string, error)                  { return a.c.Getwd() }
func (a *sftpAdapter) Close() error                            { return a.c.Close() }

// sshDial dials addr and performs the SSH handshake. The handshake is bounded
// by cfg.Timeout and aborted when ctx is cancelled. Tests replace it.
var sshDial = func(ctx context.Context, network, addr string, cfg *ssh.ClientConfig) (sshClientIface, error) {
	dialer := net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(cfg.Timeout))
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	return ssh.NewClient(c, chans, reqs), nil
}

// newSftpClient starts the sftp subsystem on an established connection.
var newSftpClient = func(c sshClientIface) (sftpRaw, error) {
	client, ok := c.(*ssh.Client)
	if !ok {
		return nil, fmt.Errorf("unsupported ssh client %T", c)
	}
	s, err := sftp.NewClient(client)
	if err != nil {
		return nil, err
	}
	return &sftpAdapter{c: s}, nil
}

// sshAgentGetter returns the running SSH agent, or nil, and the connection
// to close once the session ends.
var sshAgentGetter = getSSHAgent

// Session is one live SSH connection with an SFTP client and the remote
// directory files are written into. A Session is not safe for concurrent use.
type Session struct {
	target remote.Target
	client sshClientIface
	sftp   sftpRaw
	agent  io.Closer
	cwd    string
	closed bool
}

// Dial connects to target as target.User, offering every key in keys as one
// public key auth method. Every failure is a failure.Connection error.
func Dial(ctx context.Context, opts Options, target remote.Target, keys sshkey.KeyMaterial) (*Session, error) {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	var auth []ssh.AuthMethod
	if signers := keys.Signers(); len(signers) > 0 {
		auth = append(auth, ssh.PublicKeys(signers...))
	}
	var agentConn io.Closer
	if opts.UseAgent {
		if a, conn := sshAgentGetter(); a != nil {
			auth = append(auth, ssh.PublicKeysCallback(a.Signers))
			agentConn = conn
		} else {
			logging.Debugf("no ssh agent available")
		}
	}
	closeAgent := func() {
		if agentConn != nil {
			_ = agentConn.Close()
		}
	}
	if len(auth) == 0 {
		return nil, failure.New(failure.Connection, "no authentication method available for %s", target.Host)
	}

	hostKeyCallback, err := HostKeyCallback(opts)
	if err != nil {
		closeAgent()
		return nil, failure.Wrap(failure.Connection, err, "host key verification failed for %s", target.Host)
	}

	config := &ssh.ClientConfig{
		User:            target.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         opts.Timeout,
	}

	addr := target.Addr(opts.Port)
	logging.Debugf("dialing %s as %s", addr, target.User)
	client, err := sshDial(ctx, "tcp", addr, config)
	if err != nil {
		closeAgent()
		return nil, ClassifyConnectionError(target.Host, err)
	}

	raw, err := newSftpClient(client)
	if err != nil {
		_ = client.Close()
		closeAgent()
		return nil, failure.Wrap(failure.Connection, err, "failed to create sftp client")
	}

	s := &Session{target: target, client: client, sftp: raw, agent: agentConn}
	if wd, err := raw.Getwd(); err == nil {
		s.cwd = wd
	} else {
		logging.Debugf("remote working directory unknown: %v", err)
	}
	return s, nil
}

// ChangeDirectory makes dir the directory uploads are written into. An empty
// dir keeps the current one; a relative dir resolves against it. The result
// must exist and be a directory.
func (s *Session) ChangeDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	target := dir
	if !path.IsAbs(dir) {
		target = path.Join(s.cwd, dir)
	} else {
		target = path.Clean(dir)
	}

	fi, err := s.sftp.Stat(target)
	if err != nil {
		return failure.Wrap(failure.RemoteDirectory, err, "remote directory %s", target)
	}
	if !fi.IsDir() {
		return failure.New(failure.RemoteDirectory, "remote path %s is not a directory", target)
	}
	s.cwd = target
	return nil
}

// WorkingDir returns the remote directory uploads are written into. It is
// empty when the server did not report one and none was set.
func (s *Session) WorkingDir() string { return s.cwd }

// RemotePath returns where a local file called name is written.
func (s *Session) RemotePath(name string) string {
	return path.Join(s.cwd, name)
}

// Upload copies localPath to the working directory under its base name,
// replacing any existing file. It returns the number of bytes written. A
// failure may leave a partial remote file behind.
func (s *Session) Upload(ctx context.Context, localPath string) (int64, error) {
	name := filepath.Base(localPath)
	if err := ctx.Err(); err != nil {
		return 0, failure.Wrap(failure.Transfer, err, "upload of %s cancelled", name)
	}
	if s.closed {
		return 0, failure.New(failure.Transfer, "upload of %s: session closed", name)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return 0, failure.Wrap(failure.Transfer, err, "failed to open %s", name)
	}
	defer src.Close()

	dst, err := s.sftp.Create(s.RemotePath(name))
	if err != nil {
		return 0, failure.Wrap(failure.Transfer, err, "failed to create remote file %s", name)
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		return n, failure.Wrap(failure.Transfer, err, "failed to upload %s", name)
	}
	if err := dst.Close(); err != nil {
		return n, failure.Wrap(failure.Transfer, err, "failed to finish %s", name)
	}
	return n, nil
}

// Close closes the SFTP client, then the SSH connection. Calls after the
// first are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.sftp != nil {
		if err := s.sftp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sftp: %w", err))
		}
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close ssh: %w", err))
		}
	}
	if s.agent != nil {
		if err := s.agent.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close ssh agent: %w", err))
		}
	}
	return errors.Join(errs...)
}
