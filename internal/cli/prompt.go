// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/toeirei/zynq/internal/i18n"
	"github.com/toeirei/zynq/internal/security"
)

// isTerminal and readPassword are swapped in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// passphrasePrompt asks for a key passphrase on the terminal without echo.
// It returns nil when stdin is not a terminal, so encrypted keys fail to
// load instead of blocking.
func passphrasePrompt(stdin *os.File, out io.Writer) func(path string) (security.Secret, error) {
	fd := int(stdin.Fd())
	if !isTerminal(fd) {
		return nil
	}
	return func(path string) (security.Secret, error) {
		fmt.Fprint(out, i18n.T("keys.passphrase_prompt", filepath.Base(path)))
		pw, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		secret := security.FromBytes(pw)
		for i := range pw {
			pw[i] = 0
		}
		return secret, nil
	}
}
