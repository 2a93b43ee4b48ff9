package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteLog creates (or truncates) name inside dir with the supplied lines,
// each newline-terminated, and returns the file's path.
func WriteLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(joinLines(lines)), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// AppendLog appends lines to the file at path, creating it when missing.
func AppendLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(joinLines(lines)); err != nil {
		t.Fatalf("failed to append to %s: %v", path, err)
	}
}

// CanonicalDir returns dir with symlinks resolved, matching the keys the
// watcher produces (t.TempDir lives under a symlink on macOS).
func CanonicalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", dir, err)
	}
	return resolved
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
