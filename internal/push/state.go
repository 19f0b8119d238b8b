// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package push

// State is a step of a push run.
type State int

const (
	Idle State = iota
	ArgsValidated
	RemoteParsed
	KeysResolved
	Connected
	Syncing
	Done
	Failed
)

var stateNames = [...]string{
	Idle:          "idle",
	ArgsValidated: "args-validated",
	RemoteParsed:  "remote-parsed",
	KeysResolved:  "keys-resolved",
	Connected:     "connected",
	Syncing:       "syncing",
	Done:          "done",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == Done || s == Failed }
