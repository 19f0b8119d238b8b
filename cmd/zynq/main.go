// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Command zynq pushes the files of a local directory to a remote directory
// over SFTP.
//
// Usage:
//
//	zynq --remote=user@host:/path --source=./dist [--key=~/.ssh/id_deploy]
package main

import (
	"os"

	"github.com/toeirei/zynq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
