// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package push runs one push: it validates the request, resolves the remote
// and the keys, connects, and uploads every file of the source directory.
package push

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/toeirei/zynq/internal/failure"
	"github.com/toeirei/zynq/internal/i18n"
	"github.com/toeirei/zynq/internal/logging"
	"github.com/toeirei/zynq/internal/remote"
	"github.com/toeirei/zynq/internal/sshkey"
	"github.com/toeirei/zynq/internal/transfer"
)

// Request is what the user asked for. Key is optional.
type Request struct {
	Remote string
	Source string
	Key    string
}

// Session is the open connection files are uploaded through.
type Session interface {
	ChangeDirectory(dir string) error
	Upload(ctx context.Context, localPath string) (int64, error)
	Close() error
}

// Connector opens a Session to target.
type Connector func(ctx context.Context, target remote.Target, keys sshkey.KeyMaterial) (Session, error)

// KeyResolver yields the keys offered to the server.
type KeyResolver interface {
	Discover(explicitPath string) (sshkey.KeyMaterial, error)
}

// DialConnector connects with transfer.Dial using opts.
func DialConnector(opts transfer.Options) Connector {
	return func(ctx context.Context, target remote.Target, keys sshkey.KeyMaterial) (Session, error) {
		s, err := transfer.Dial(ctx, opts, target, keys)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// FileResult is the outcome of one upload.
type FileResult struct {
	Name  string
	Bytes int64
	Err   error
}

// Report describes a finished run.
type Report struct {
	State State
	// FailedAt is the state the run was in when it failed.
	FailedAt State
	Target   remote.Target
	Files    []FileResult
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Uploaded counts the files that were written completely.
func (r *Report) Uploaded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

func (r *Report) transition(to State) {
	if r.State.Terminal() {
		logging.Debugf("push: ignoring %s -> %s", r.State, to)
		return
	}
	logging.Debugf("push: %s -> %s", r.State, to)
	r.State = to
}

// Orchestrator drives a run from request to report.
type Orchestrator struct {
	Keys    KeyResolver
	Connect Connector

	// ContinueOnError records failed uploads and carries on. The run still
	// fails at the end.
	ContinueOnError bool

	now func() time.Time
}

// New returns an Orchestrator that aborts on the first failed upload.
func New(keys KeyResolver, connect Connector) *Orchestrator {
	return &Orchestrator{Keys: keys, Connect: connect, now: time.Now}
}

// Run performs the push. The returned Report is never nil; its Err equals
// the returned error. The one diagnostic line for a failed run is logged
// here.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	now := o.now
	if now == nil {
		now = time.Now
	}
	start := now()
	r := &Report{State: Idle}

	fail := func(err error) (*Report, error) {
		r.FailedAt = r.State
		r.transition(Failed)
		r.Err = err
		r.Duration = now().Sub(start)
		logging.Errorf("%s", i18n.T("run.error", err))
		return r, err
	}

	if strings.TrimSpace(req.Remote) == "" {
		return fail(failure.New(failure.Argument, "%s", i18n.T("args.no_remote")))
	}
	if fi, err := os.Stat(req.Source); err != nil || !fi.IsDir() {
		return fail(failure.New(failure.Argument, "%s", i18n.T("args.invalid_source")))
	}
	files, err := Snapshot(req.Source)
	if err != nil {
		return fail(failure.Wrap(failure.Argument, err, "%s", i18n.T("args.invalid_source")))
	}
	if len(files) == 0 {
		return fail(failure.New(failure.Argument, "%s", i18n.T("args.no_files")))
	}
	r.transition(ArgsValidated)

	target, err := remote.Parse(req.Remote)
	if err != nil {
		return fail(err)
	}
	r.Target = target
	r.transition(RemoteParsed)

	keys, err := o.Keys.Discover(req.Key)
	if err != nil {
		return fail(err)
	}
	logging.Debugf("%s", i18n.T("keys.loaded", len(keys), strings.Join(keys.Sources(), ", ")))
	r.transition(KeysResolved)

	logging.Infof("%s", i18n.T("push.connecting", target))
	sess, err := o.Connect(ctx, target, keys)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logging.Warnf("closing session: %v", cerr)
		}
	}()
	if err := sess.ChangeDirectory(target.Path); err != nil {
		return fail(err)
	}
	r.transition(Connected)

	r.transition(Syncing)
	failed := 0
	for _, p := range files {
		name := filepath.Base(p)
		n, err := sess.Upload(ctx, p)
		r.Files = append(r.Files, FileResult{Name: name, Bytes: n, Err: err})
		r.Bytes += n
		if err != nil {
			if !o.ContinueOnError || ctx.Err() != nil {
				return fail(err)
			}
			failed++
			logging.Errorf("%s", i18n.T("run.error", err))
			continue
		}
		logging.Infof("%s", i18n.T("push.uploaded", name, humanize.Bytes(uint64(n))))
	}
	if failed > 0 {
		return fail(failure.New(failure.Transfer, "%s", i18n.T("push.partial", failed, len(files))))
	}

	r.transition(Done)
	r.Duration = now().Sub(start)
	logging.Infof("%s", i18n.T("push.done", len(files), humanize.Bytes(uint64(r.Bytes)), target, r.Duration.Round(time.Millisecond)))
	return r, nil
}
