// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the optional zynq.yaml settings layered with ZYNQ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every tunable that is not a push flag.
type Config struct {
	SSH      SSHConfig      `mapstructure:"ssh"`
	Transfer TransferConfig `mapstructure:"transfer"`
	Log      LogConfig      `mapstructure:"log"`
	Language string         `mapstructure:"language"`
}

type SSHConfig struct {
	Port                  int           `mapstructure:"port"`
	Timeout               time.Duration `mapstructure:"timeout"`
	KnownHosts            string        `mapstructure:"known_hosts"`
	StrictHostKey         bool          `mapstructure:"strict_host_key"`
	InsecureIgnoreHostKey bool          `mapstructure:"insecure_ignore_host_key"`
	Agent                 bool          `mapstructure:"agent"`
}

type TransferConfig struct {
	// ContinueOnError keeps uploading after a failed file. Off by default:
	// the first failure aborts the run.
	ContinueOnError bool `mapstructure:"continue_on_error"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Defaults returns the built-in values. An empty ssh.known_hosts means
// <home>/.ssh/known_hosts, resolved by the caller.
func Defaults() map[string]any {
	return map[string]any{
		"ssh.port":                     22,
		"ssh.timeout":                  "30s",
		"ssh.known_hosts":              "",
		"ssh.strict_host_key":          false,
		"ssh.insecure_ignore_host_key": false,
		"ssh.agent":                    false,
		"transfer.continue_on_error":   false,
		"log.level":                    "info",
		"log.file":                     "",
		"language":                     "en",
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "zynq")
		default:
			configDir = "/etc/zynq"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "zynq")
	}

	return filepath.Join(configDir, "zynq.yaml"), nil
}

// LoadConfig layers defaults, the first zynq.yaml found (or explicitPath
// when set), a .env file in the working directory and ZYNQ_* variables, then
// decodes the result into T. A missing config file is not an error; a
// missing explicit file is.
func LoadConfig[T any](defaults map[string]any, explicitPath string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("zynq")
	v.SetConfigType("yaml")
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return c, fmt.Errorf("config file %s not accessible: %w", explicitPath, err)
		}
		v.SetConfigFile(explicitPath)
	} else {
		if userConfigPath, err := getConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(userConfigPath))
		}
		if systemConfigPath, err := getConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(systemConfigPath))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	// .env is optional; existing process variables win over it.
	_ = godotenv.Load()

	v.SetEnvPrefix("zynq")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Load is LoadConfig for Config with Defaults.
func Load(explicitPath string) (Config, error) {
	return LoadConfig[Config](Defaults(), explicitPath)
}
