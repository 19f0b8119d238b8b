// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	cfg "github.com/toeirei/zynq/internal/config"
)

// isolate points the user config dir and working directory at empty temp
// dirs so no real zynq.yaml or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	got, err := cfg.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SSH.Port != 22 || got.SSH.Timeout != 30*time.Second {
		t.Fatalf("unexpected ssh defaults: %+v", got.SSH)
	}
	if got.Transfer.ContinueOnError {
		t.Fatalf("continue_on_error must default to false")
	}
	if got.Log.Level != "info" || got.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoad_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "ssh:\n  port: 2222\n  timeout: 5s\n  agent: true\ntransfer:\n  continue_on_error: true\nlanguage: de\n"
	file := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SSH.Port != 2222 || got.SSH.Timeout != 5*time.Second || !got.SSH.Agent {
		t.Fatalf("file values not applied: %+v", got.SSH)
	}
	if !got.Transfer.ContinueOnError || got.Language != "de" {
		t.Fatalf("file values not applied: %+v", got)
	}
}

func TestLoad_FindsFileInWorkingDirectory(t *testing.T) {
	tmp := isolate(t)
	if err := os.WriteFile(filepath.Join(tmp, "zynq.yaml"), []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := cfg.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Log.Level != "debug" {
		t.Fatalf("expected debug from ./zynq.yaml, got %q", got.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(file, []byte("ssh:\n  port: 2222\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ZYNQ_SSH_PORT", "2200")

	got, err := cfg.Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SSH.Port != 2200 {
		t.Fatalf("expected env to win, got %d", got.SSH.Port)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	tmp := isolate(t)
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("ZYNQ_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ZYNQ_LOG_LEVEL") })

	got, err := cfg.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Log.Level != "warn" {
		t.Fatalf("expected .env value, got %q", got.Log.Level)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := cfg.Load("/no/such/zynq.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(file, []byte("ssh: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cfg.Load(file); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_FindsFileInUserConfigDir(t *testing.T) {
	tmp := isolate(t)
	dir := filepath.Join(tmp, "xdg", "zynq")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "zynq.yaml"), []byte("ssh:\n  port: 2200\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	userDir, err := os.UserConfigDir()
	if err != nil || userDir != filepath.Join(tmp, "xdg") {
		t.Skipf("user config dir does not follow XDG_CONFIG_HOME here: %q", userDir)
	}

	got, err := cfg.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SSH.Port != 2200 {
		t.Fatalf("expected port from user config dir, got %d", got.SSH.Port)
	}
}
