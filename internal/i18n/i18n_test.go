// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestInitAndAvailable(t *testing.T) {
	Init("en")
	av := Available()
	if len(av) != 2 || av[0] != "de" || av[1] != "en" {
		t.Fatalf("unexpected locales: %v", av)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("args.no_remote"); got != "No remote specified" {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := T("args.illegal", "--port=22"); got != "Illegal argument: --port=22" {
		t.Fatalf("unexpected formatted translation %q", got)
	}

	Init("de")
	defer Init("en")
	if got := T("args.no_remote"); got != "Kein Ziel angegeben" {
		t.Fatalf("unexpected German translation %q", got)
	}
}

func TestT_UnknownIDAndFallback(t *testing.T) {
	Init("fr")
	defer Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected ID back, got %q", got)
	}
	if got := T("args.no_files"); got != "No files to sync in source directory" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}
