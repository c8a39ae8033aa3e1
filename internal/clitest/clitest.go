// Package clitest is a small golden-file test harness for the vesper
// binary's sub-commands, adapted from the teacher's own file-based test
// harness: run a source file, diff the captured stdout/stderr against a
// checked-in ".want"/".err" file, and support a -test.update-golden flag
// to regenerate them.
package clitest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateGolden = flag.Bool("test.update-golden", false, "if set, overwrites golden files with actual output")

// DiffGolden compares got against the contents of the golden file at path,
// failing the test with a unified diff on mismatch. With -test.update-golden
// set, it rewrites the golden file to match got instead of comparing.
func DiffGolden(t *testing.T, path, got string) {
	t.Helper()

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("golden mismatch for %s:\n%s", path, patch)
	}
}
