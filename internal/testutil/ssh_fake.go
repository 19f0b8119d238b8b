// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

// FakeSSHClient is a lightweight test double implementing the minimal
// Close() behavior a transfer session needs. Tests can use it to simulate
// a client without constructing a real *ssh.Client.
type FakeSSHClient struct {
	// CloseFunc, if set, is called when Close() is invoked.
	CloseFunc func() error
	// Closes counts Close calls.
	Closes int
}

// Close counts the call and calls CloseFunc if provided.
func (f *FakeSSHClient) Close() error {
	if f == nil {
		return nil
	}
	f.Closes++
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}

// NewFakeSSHClient returns a ready-to-use FakeSSHClient pointer.
func NewFakeSSHClient() *FakeSSHClient {
	return &FakeSSHClient{}
}
