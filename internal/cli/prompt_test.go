// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestPassphrasePrompt_NotATerminal(t *testing.T) {
	origTerm := isTerminal
	defer func() { isTerminal = origTerm }()
	isTerminal = func(int) bool { return false }

	if p := passphrasePrompt(os.Stdin, &bytes.Buffer{}); p != nil {
		t.Fatalf("expected no prompt without a terminal")
	}
}

func TestPassphrasePrompt_ReadsHiddenInput(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	defer func() { isTerminal, readPassword = origTerm, origRead }()
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hunter2"), nil }

	var out bytes.Buffer
	prompt := passphrasePrompt(os.Stdin, &out)
	if prompt == nil {
		t.Fatalf("expected a prompt on a terminal")
	}
	secret, err := prompt("/home/bob/.ssh/id_work")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if string(secret) != "hunter2" {
		t.Fatalf("unexpected passphrase")
	}
	if !strings.Contains(out.String(), "id_work") {
		t.Fatalf("prompt should name the key file, got %q", out.String())
	}
}

func TestPassphrasePrompt_ReadError(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	defer func() { isTerminal, readPassword = origTerm, origRead }()
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return nil, errors.New("eof") }

	prompt := passphrasePrompt(os.Stdin, &bytes.Buffer{})
	if _, err := prompt("id_work"); err == nil {
		t.Fatalf("expected read error")
	}
}
