// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package transfer

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/toeirei/zynq/internal/logging"
)

// HostKeyCallback builds the host key policy for opts.
//
//   - InsecureIgnoreHostKey accepts every key without a word.
//   - A readable KnownHosts file is consulted. A key that contradicts it is
//     always rejected. A host it does not list is rejected when StrictHostKey
//     is set and accepted with a warning otherwise.
//   - Without a readable file, StrictHostKey is an error and any other
//     setting accepts every key with a warning.
func HostKeyCallback(opts Options) (ssh.HostKeyCallback, error) {
	if opts.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	if opts.KnownHosts != "" {
		known, err := knownhosts.New(opts.KnownHosts)
		if err == nil {
			return verifyKnown(known, opts.StrictHostKey), nil
		}
		if opts.StrictHostKey {
			return nil, fmt.Errorf("cannot load known_hosts %s: %w", opts.KnownHosts, err)
		}
		logging.Warnf("Could not load known_hosts %s: %v. Host keys will not be verified.", opts.KnownHosts, err)
	} else if opts.StrictHostKey {
		return nil, errors.New("strict host key checking needs a known_hosts file")
	}

	return acceptWithWarning, nil
}

func verifyKnown(known ssh.HostKeyCallback, strict bool) ssh.HostKeyCallback {
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := known(hostname, remote, key)
		if err == nil {
			return nil
		}
		var ke *knownhosts.KeyError
		if !strict && errors.As(err, &ke) && len(ke.Want) == 0 {
			return acceptWithWarning(hostname, remote, key)
		}
		return err
	}
}

func acceptWithWarning(hostname string, _ net.Addr, key ssh.PublicKey) error {
	logging.Warnf("Accepting unverified host key for %s (%s %s)", hostname, key.Type(), ssh.FingerprintSHA256(key))
	return nil
}
