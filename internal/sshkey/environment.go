// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrNoHome is returned when the platform has no known home variable or the
// variable is empty.
var ErrNoHome = errors.New("home directory could not be resolved")

// Environment supplies the process environment to key discovery. Tests build
// one directly instead of touching real variables.
type Environment struct {
	Getenv func(string) string
	GOOS   string
}

// SystemEnvironment binds the real process environment.
func SystemEnvironment() Environment {
	return Environment{Getenv: os.Getenv, GOOS: runtime.GOOS}
}

// HomeVar names the variable holding the user's profile directory on goos.
// It returns "" for platforms without one.
func HomeVar(goos string) string {
	switch goos {
	case "windows":
		return "USERPROFILE"
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return "HOME"
	default:
		return ""
	}
}

// HomeDir resolves the user's home directory.
func (e Environment) HomeDir() (string, error) {
	name := HomeVar(e.GOOS)
	if name == "" {
		return "", fmt.Errorf("%w: unsupported platform %q", ErrNoHome, e.GOOS)
	}
	if e.Getenv == nil {
		return "", fmt.Errorf("%w: no environment", ErrNoHome)
	}
	home := e.Getenv(name)
	if home == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrNoHome, name)
	}
	return home, nil
}
