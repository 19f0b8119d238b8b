// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli wires flags, configuration and logging to a push run and maps
// the outcome to an exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toeirei/zynq/buildvars"
	"github.com/toeirei/zynq/internal/config"
	"github.com/toeirei/zynq/internal/failure"
	"github.com/toeirei/zynq/internal/i18n"
	"github.com/toeirei/zynq/internal/logging"
	"github.com/toeirei/zynq/internal/push"
	"github.com/toeirei/zynq/internal/sshkey"
	"github.com/toeirei/zynq/internal/transfer"
)

// options collects the parsed flags of one invocation.
type options struct {
	remote     string
	source     string
	key        string
	configPath string
	verbose    bool

	// illegal holds the first argument rejected by a once-only flag.
	illegal string
}

// reportedError marks errors whose diagnostic line was already logged.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// environment is swapped in tests.
var environment = sshkey.SystemEnvironment

// NewRootCmd builds the zynq command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "zynq --remote=user@host:path --source=<dir> [--key=<file>]",
		Short: "Push the files of a local directory to a remote directory over SFTP",
		Long: `zynq copies every regular file directly inside --source into the remote
directory of --remote over a single SSH connection. Existing remote files
with the same name are overwritten.

Without --key, every private key found in ~/.ssh is offered to the server.`,
		Version:       buildvars.VersionOrDefault("dev"),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return illegalArgument(args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.Var(&onceValue{name: "remote", target: &opts.remote, illegal: &opts.illegal}, "remote", "remote target as user@host:path")
	flags.Var(&onceValue{name: "source", target: &opts.source, illegal: &opts.illegal}, "source", "local directory whose files are pushed")
	flags.Var(&onceValue{name: "key", target: &opts.key, illegal: &opts.illegal}, "key", "private key file (default: every key in ~/.ssh)")
	flags.Var(&onceValue{name: "config", target: &opts.configPath, illegal: &opts.illegal}, "config", "config file (default is <user config dir>/zynq/zynq.yaml or ./zynq.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if opts.illegal != "" {
			return illegalArgument(opts.illegal)
		}
		return illegalArgument(offendingArg(err))
	})

	return cmd
}

func runPush(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%s", i18n.T("config.error_load", err))
	}
	i18n.Init(cfg.Language)

	closer, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	if opts.verbose {
		logging.SetDebug(true)
	}
	if !slices.Contains(i18n.Available(), cfg.Language) {
		logging.Warnf("%s", i18n.T("config.unknown_language", cfg.Language))
	}

	env := environment()
	discoverer := sshkey.NewDiscoverer(env)
	discoverer.Passphrase = passphrasePrompt(os.Stdin, cmd.ErrOrStderr())

	tOpts := transfer.Options{
		Port:                  cfg.SSH.Port,
		Timeout:               cfg.SSH.Timeout,
		KnownHosts:            cfg.SSH.KnownHosts,
		StrictHostKey:         cfg.SSH.StrictHostKey,
		InsecureIgnoreHostKey: cfg.SSH.InsecureIgnoreHostKey,
		UseAgent:              cfg.SSH.Agent,
	}
	if tOpts.KnownHosts == "" {
		if home, err := env.HomeDir(); err == nil {
			tOpts.KnownHosts = filepath.Join(home, ".ssh", "known_hosts")
		}
	}

	orch := push.New(discoverer, push.DialConnector(tOpts))
	orch.ContinueOnError = cfg.Transfer.ContinueOnError

	_, err = orch.Run(cmd.Context(), push.Request{
		Remote: opts.remote,
		Source: opts.source,
		Key:    opts.key,
	})
	if err != nil {
		return reportedError{err}
	}
	return nil
}

// Run executes the command with args and returns the process exit code.
// Help and version text go to stdout, logs and diagnostics to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logging.L.SetOutput(stderr)

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	var err error
	if arg := detachedValue(cmd.Flags(), args); arg != "" {
		err = illegalArgument(arg)
	} else {
		err = cmd.ExecuteContext(ctx)
	}
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		logging.Errorf("%s", i18n.T("run.error", err))
	}
	return failure.ExitCode(err)
}

// Execute runs zynq with the process arguments. SIGINT and SIGTERM stop the
// push before the next file.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
