package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/logtail-dash/internal/testutil"
)

const waitTimeout = 5 * time.Second

func startMux(t *testing.T, sources ...string) *Mux {
	t.Helper()
	m, err := New(sources, Options{Poll: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		m.Stop()
		m.Wait()
	})
	return m
}

func nextLine(t *testing.T, m *Mux) Line {
	t.Helper()
	select {
	case evt, ok := <-m.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		if evt.Err != nil {
			t.Fatalf("unexpected watcher error: %v", evt.Err)
		}
		return evt.Line
	case <-time.After(waitTimeout):
		t.Fatalf("timeout waiting for line")
	}
	return Line{}
}

func expectLines(t *testing.T, m *Mux, source string, want ...string) {
	t.Helper()
	for _, text := range want {
		got := nextLine(t, m)
		if got.Source != source || got.Text != text {
			t.Fatalf("expected %s: %q, got %s: %q", source, text, got.Source, got.Text)
		}
	}
}

func TestMuxPublishesAppendedLinesInOrder(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := testutil.WriteLog(t, dir, "app.log", "old 1", "old 2")
	m := startMux(t, path)

	testutil.AppendLog(t, path, "new 1", "new 2")
	testutil.AppendLog(t, path, "new 3")
	expectLines(t, m, path, "new 1", "new 2", "new 3")
}

func TestMuxPicksUpFileCreatedLater(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := filepath.Join(dir, "later.log")
	m := startMux(t, path)

	testutil.AppendLog(t, path, "hello")
	expectLines(t, m, path, "hello")
}

func TestMuxRereadsTruncatedFile(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := testutil.WriteLog(t, dir, "app.log", "a long first line", "a long second line")
	m := startMux(t, path)

	testutil.WriteLog(t, dir, "app.log", "fresh")
	expectLines(t, m, path, "fresh")
}

func TestMuxHoldsPartialLine(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := testutil.WriteLog(t, dir, "app.log")
	m := startMux(t, path)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("half"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case evt := <-m.Events():
		t.Fatalf("expected no event for partial line, got %+v", evt)
	case <-time.After(200 * time.Millisecond):
	}

	if _, err := f.WriteString(" done\r\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	expectLines(t, m, path, "half done")
}

func TestMuxCompletesLineStartedBeforeWatch(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("old\nhal"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	m := startMux(t, path)

	testutil.AppendLog(t, path, "f")
	expectLines(t, m, path, "half")
}

func TestCompleteOffset(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 5000)
	tests := []struct {
		content string
		want    int64
	}{
		{"", 0},
		{"a\nb\n", 4},
		{"a\nbc", 2},
		{"partial", 0},
		{"a\n" + long, 2},
	}
	for i, tt := range tests {
		path := filepath.Join(dir, fmt.Sprintf("f%d.log", i))
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if got := completeOffset(path, int64(len(tt.content))); got != tt.want {
			t.Fatalf("completeOffset(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

// A link in one directory to a file in another: inotify on the link's
// directory never sees writes to the target, so the target must be watched.
func TestMuxFollowsSymlinkedSource(t *testing.T) {
	targetDir := testutil.CanonicalDir(t, t.TempDir())
	linkDir := testutil.CanonicalDir(t, t.TempDir())
	target := testutil.WriteLog(t, targetDir, "app.log", "old")
	link := filepath.Join(linkDir, "current.log")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}
	key, err := Canonical(link)
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	m, err := New([]string{key}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		m.Stop()
		m.Wait()
	})

	testutil.AppendLog(t, link, "new")
	expectLines(t, m, target, "new")
}

func TestMuxReportsUnreadableSource(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := testutil.WriteLog(t, dir, "app.log", "old")
	m, err := New([]string{path}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		m.Stop()
		m.Wait()
	})

	// Swap the file for a directory: it opens but cannot be read as a log.
	staging := filepath.Join(testutil.CanonicalDir(t, t.TempDir()), "dir")
	if err := os.Mkdir(staging, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	testutil.WriteLog(t, staging, "child.log", "x")
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := os.Rename(staging, path); err != nil {
		t.Skipf("cannot move directory into place: %v", err)
	}

	deadline := time.After(waitTimeout)
	for {
		select {
		case evt, ok := <-m.Events():
			if !ok {
				t.Fatalf("events closed before an error arrived")
			}
			if evt.Err != nil {
				if !strings.Contains(evt.Err.Error(), path) {
					t.Fatalf("expected error naming %s, got %v", path, evt.Err)
				}
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for read error")
		}
	}
}

func TestMuxSeparatesSources(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	a := testutil.WriteLog(t, dir, "a.log")
	b := testutil.WriteLog(t, dir, "b.log")
	m := startMux(t, a, b)

	testutil.AppendLog(t, b, "from b")
	expectLines(t, m, b, "from b")
	testutil.AppendLog(t, a, "from a")
	expectLines(t, m, a, "from a")
}

func TestMuxIgnoresUnwatchedSiblings(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	path := testutil.WriteLog(t, dir, "app.log")
	m := startMux(t, path)

	testutil.WriteLog(t, dir, "other.log", "noise")
	testutil.AppendLog(t, path, "signal")
	expectLines(t, m, path, "signal")
}

func TestNewRejectsMissingParent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "app.log")
	_, err := New([]string{missing}, Options{})
	if !errors.Is(err, ErrParentMissing) {
		t.Fatalf("expected ErrParentMissing, got %v", err)
	}
}

func TestCanonical(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Canonical(filepath.Join(link, "sub", "..", "app.log"))
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	if want := filepath.Join(dir, "app.log"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	target := testutil.WriteLog(t, dir, "target.log", "x")
	fileLink := filepath.Join(testutil.CanonicalDir(t, t.TempDir()), "current.log")
	if err := os.Symlink(target, fileLink); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}
	got, err = Canonical(fileLink)
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	if got != target {
		t.Fatalf("expected symlinked file to resolve to %s, got %s", target, got)
	}

	if _, err := Canonical(filepath.Join(dir, "missing", "app.log")); !errors.Is(err, ErrParentMissing) {
		t.Fatalf("expected ErrParentMissing, got %v", err)
	}
}

func TestStopClosesEvents(t *testing.T) {
	dir := testutil.CanonicalDir(t, t.TempDir())
	m, err := New([]string{filepath.Join(dir, "app.log")}, Options{Poll: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Stop()
	m.Wait()

	select {
	case _, ok := <-m.Events():
		if ok {
			// drain at most one buffered event
			if _, ok := <-m.Events(); ok {
				t.Fatalf("expected events channel to be closed")
			}
		}
	case <-time.After(waitTimeout):
		t.Fatalf("timeout waiting for events channel to close")
	}
}
