// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package failure defines the error kinds a push run can end with and maps
// them to process exit codes.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The zero value means "unclassified".
type Kind int

const (
	Unknown Kind = iota
	Argument
	MalformedRemote
	NoKeysFound
	KeyLoad
	Connection
	RemoteDirectory
	Transfer
)

var kindNames = map[Kind]string{
	Unknown:         "unknown",
	Argument:        "argument",
	MalformedRemote: "malformed remote",
	NoKeysFound:     "no keys found",
	KeyLoad:         "key load",
	Connection:      "connection",
	RemoteDirectory: "remote directory",
	Transfer:        "transfer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Msg is the human readable part, Err the
// underlying cause (may be nil).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err == nil:
		return e.Kind.String()
	case e.Msg == "":
		return e.Err.Error()
	case e.Err == nil:
		return e.Msg
	default:
		return e.Msg + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with a formatted message and no cause.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. It returns nil when err is nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to the process exit status. nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case Argument:
		return 2
	case MalformedRemote:
		return 3
	case NoKeysFound:
		return 4
	case KeyLoad:
		return 5
	case Connection:
		return 6
	case RemoteDirectory:
		return 7
	case Transfer:
		return 8
	default:
		return 1
	}
}
