// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package push

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/toeirei/zynq/internal/i18n"
	"github.com/toeirei/zynq/internal/logging"
)

// Snapshot lists the regular files directly inside dir, symlinks resolved,
// in byte-wise name order. Subdirectories and special files are skipped.
func Snapshot(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var files []string
	for _, name := range names {
		p := filepath.Join(dir, name)
		fi, err := os.Stat(p)
		if err != nil {
			logging.Debugf("skipping %s: %v", name, err)
			continue
		}
		if !fi.Mode().IsRegular() {
			logging.Debugf("%s", i18n.T("push.skipped_entry", name))
			continue
		}
		files = append(files, p)
	}
	return files, nil
}
