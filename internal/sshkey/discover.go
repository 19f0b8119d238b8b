// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey finds and loads the private keys used to authenticate a push.
package sshkey

import (
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	"github.com/toeirei/zynq/internal/failure"
	"github.com/toeirei/zynq/internal/i18n"
	"github.com/toeirei/zynq/internal/logging"
	"github.com/toeirei/zynq/internal/security"
)

// ignoredNames are files in ~/.ssh that never hold a private key.
var ignoredNames = map[string]bool{
	"authorized_keys": true,
	"known_hosts":     true,
	"config":          true,
}

// Discoverer loads either one explicit key or every plausible key in the
// default key directory.
type Discoverer struct {
	Env Environment

	// Passphrase is asked for the passphrase of an explicitly named key that
	// is encrypted. Discovered keys are never prompted for.
	Passphrase func(path string) (security.Secret, error)

	// OnSkip receives every discovered candidate that failed to load. The
	// error is of kind failure.KeyLoad. Defaults to a warning log line.
	OnSkip func(err error)
}

// NewDiscoverer returns a Discoverer bound to env.
func NewDiscoverer(env Environment) *Discoverer {
	return &Discoverer{Env: env}
}

// Discover loads explicitPath when it is set; otherwise it scans the default
// key directory.
func (d *Discoverer) Discover(explicitPath string) (KeyMaterial, error) {
	if explicitPath != "" {
		return d.loadExplicit(explicitPath)
	}
	return d.discoverDefault()
}

// DefaultDir returns <home>/.ssh for the discoverer's environment.
func (d *Discoverer) DefaultDir() (string, error) {
	home, err := d.Env.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ssh"), nil
}

func (d *Discoverer) loadExplicit(path string) (KeyMaterial, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, failure.Wrap(failure.Argument, err, "%s", i18n.T("keys.file_missing"))
	}
	if info.IsDir() {
		return nil, failure.New(failure.Argument, "key file %s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return nil, failure.New(failure.Argument, "key file %s is not a regular file", path)
	}

	signer, err := loadSigner(path, d.Passphrase)
	if err != nil {
		return nil, failure.Wrap(failure.KeyLoad, err, "%s", filepath.Base(path))
	}
	key := Key{Source: filepath.Base(path), Signer: signer}
	logging.Debugf("loaded key %s (%s)", key.Source, key.Fingerprint())
	return KeyMaterial{key}, nil
}

func (d *Discoverer) discoverDefault() (KeyMaterial, error) {
	dir, err := d.DefaultDir()
	if err != nil {
		return nil, failure.Wrap(failure.NoKeysFound, err, "%s", i18n.T("keys.not_found"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failure.Wrap(failure.NoKeysFound, err, "%s", i18n.T("keys.not_found"))
	}

	var keys KeyMaterial
	for _, name := range Candidates(dir, entries) {
		signer, err := loadSigner(filepath.Join(dir, name), nil)
		if err != nil {
			d.skip(failure.Wrap(failure.KeyLoad, err, "%s", name))
			continue
		}
		key := Key{Source: name, Signer: signer}
		logging.Debugf("loaded key %s (%s)", key.Source, key.Fingerprint())
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, failure.New(failure.NoKeysFound, "no usable private keys in %s", dir)
	}
	return keys, nil
}

func (d *Discoverer) skip(err error) {
	if d.OnSkip != nil {
		d.OnSkip(err)
		return
	}
	logging.Warnf("%v", err)
}

// Candidates filters directory entries down to names that may hold a private
// key: regular files (or symlinks to them) without an extension that are not
// one of the well known non-key files. Order follows entries.
func Candidates(dir string, entries []os.DirEntry) []string {
	var out []string
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != "" || ignoredNames[name] || !isRegular(dir, e) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// isRegular reports whether e is a regular file, following a symlink once.
// Pipes, sockets and devices would block or fail on read.
func isRegular(dir string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	if err != nil {
		logging.Debugf("skipping %s: %v", e.Name(), err)
		return false
	}
	return info.Mode().IsRegular()
}

// loadSigner reads and parses one private key. passphrase may be nil, in which
// case an encrypted key is an error.
func loadSigner(path string, passphrase func(string) (security.Secret, error)) (ssh.Signer, error) {
	raw, err := security.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer raw.Zero()

	var signer ssh.Signer
	err = raw.Use(func(b []byte) error {
		var perr error
		signer, perr = ssh.ParsePrivateKey(b)
		return perr
	})
	if err == nil {
		return signer, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) || passphrase == nil {
		return nil, err
	}

	pass, perr := passphrase(path)
	if perr != nil {
		return nil, perr
	}
	defer pass.Zero()
	err = raw.Use(func(b []byte) error {
		var perr error
		signer, perr = ssh.ParsePrivateKeyWithPassphrase(b, pass)
		return perr
	})
	return signer, err
}
