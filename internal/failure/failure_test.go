// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package failure

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"msg only", New(Argument, "no remote specified"), "no remote specified"},
		{"msg and cause", Wrap(Transfer, cause, "upload %s", "a.txt"), "upload a.txt: boom"},
		{"cause only", &Error{Kind: Connection, Err: cause}, "boom"},
		{"bare kind", &Error{Kind: NoKeysFound}, "no keys found"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.Error(); got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

func TestWrap_NilPassthrough(t *testing.T) {
	if err := Wrap(Transfer, nil, "x"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestKindOf_ThroughFmtWrapping(t *testing.T) {
	inner := Wrap(RemoteDirectory, errors.New("not found"), "stat /srv")
	outer := fmt.Errorf("connect step: %w", inner)
	if KindOf(outer) != RemoteDirectory {
		t.Fatalf("expected RemoteDirectory, got %v", KindOf(outer))
	}
	if !IsKind(outer, RemoteDirectory) {
		t.Fatalf("IsKind returned false")
	}
	if KindOf(errors.New("plain")) != Unknown {
		t.Fatalf("expected Unknown for plain error")
	}
}

func TestExitCode(t *testing.T) {
	cases := map[Kind]int{
		Argument:        2,
		MalformedRemote: 3,
		NoKeysFound:     4,
		KeyLoad:         5,
		Connection:      6,
		RemoteDirectory: 7,
		Transfer:        8,
	}
	for k, want := range cases {
		if got := ExitCode(New(k, "x")); got != want {
			t.Fatalf("%v: got %d want %d", k, got, want)
		}
	}
	if ExitCode(nil) != 0 {
		t.Fatalf("nil should map to 0")
	}
	if ExitCode(errors.New("other")) != 1 {
		t.Fatalf("unclassified should map to 1")
	}
}
