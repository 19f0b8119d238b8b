// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import "golang.org/x/crypto/ssh"

// Key is a loaded private key and the file it came from.
type Key struct {
	Source string
	Signer ssh.Signer
}

// Fingerprint returns the SHA256 fingerprint of the key's public half.
func (k Key) Fingerprint() string {
	if k.Signer == nil {
		return ""
	}
	return ssh.FingerprintSHA256(k.Signer.PublicKey())
}

// KeyMaterial is the ordered set of keys offered for authentication.
type KeyMaterial []Key

// Signers returns the signers in order.
func (m KeyMaterial) Signers() []ssh.Signer {
	out := make([]ssh.Signer, 0, len(m))
	for _, k := range m {
		out = append(out, k.Signer)
	}
	return out
}

// Sources returns the key file names in order.
func (m KeyMaterial) Sources() []string {
	out := make([]string, 0, len(m))
	for _, k := range m {
		out = append(out, k.Source)
	}
	return out
}
