package watch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrParentMissing is returned when a source's parent directory does not
// exist, so the file can never be watched.
var ErrParentMissing = errors.New("parent directory does not exist")

// Line is one complete line appended to a source.
type Line struct {
	Source string
	Text   string
}

// Event carries either a line or a watcher error.
type Event struct {
	Line Line
	Err  error
}

// Options tunes a Mux.
type Options struct {
	// Poll re-reads every source at this interval in addition to fsnotify
	// events. Zero disables polling.
	Poll time.Duration
}

type fileState struct {
	offset int64
	info   os.FileInfo
}

// Mux watches a fixed set of files and publishes newly appended lines on a
// single channel. Lines from one file are delivered in file order.
type Mux struct {
	fs   *fsnotify.Watcher
	poll time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	files map[string]*fileState

	events chan Event
	wg     sync.WaitGroup
	done   chan struct{}
}

// Canonical resolves path to the key used by the Mux: an absolute, cleaned
// path with every symlink resolved, so the watched directory is the one the
// file really lives in. A file that does not exist yet is resolved through
// its parent directory, which must exist.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrParentMissing)
		}
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// New starts watching sources, which must be canonical keys. Existing complete
// lines are skipped: only lines finished after New returns are published.
func New(sources []string, opts Options) (*Mux, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Mux{
		fs:     fw,
		poll:   opts.Poll,
		ctx:    ctx,
		cancel: cancel,
		files:  make(map[string]*fileState, len(sources)),
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, src := range sources {
		dir := filepath.Dir(src)
		if _, ok := dirs[dir]; !ok {
			if err := addDir(fw, dir, src); err != nil {
				cancel()
				_ = fw.Close()
				return nil, err
			}
			dirs[dir] = struct{}{}
		}
		st := &fileState{}
		if info, err := os.Stat(src); err == nil {
			st.offset = completeOffset(src, info.Size())
			st.info = info
		}
		m.files[src] = st
	}

	m.wg.Add(1)
	go m.run()
	if m.poll > 0 {
		m.wg.Add(1)
		go m.pollLoop()
	}

	go func() {
		m.wg.Wait()
		_ = m.fs.Close()
		close(m.events)
		close(m.done)
	}()

	return m, nil
}

// completeOffset returns the offset just past the last newline before size,
// so an unterminated last line is read whole once its writer finishes it.
func completeOffset(path string, size int64) int64 {
	f, err := os.Open(path)
	if err != nil {
		return size
	}
	defer f.Close()

	buf := make([]byte, 4096)
	end := size
	for end > 0 {
		start := end - int64(len(buf))
		if start < 0 {
			start = 0
		}
		chunk := buf[:end-start]
		if n, _ := f.ReadAt(chunk, start); n < len(chunk) {
			return size
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return start + int64(i) + 1
		}
		end = start
	}
	return 0
}

func addDir(fw *fsnotify.Watcher, dir, src string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", src, ErrParentMissing)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", src, ErrParentMissing)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Events returns the channel of lines and errors. It is closed once the Mux
// has stopped.
func (m *Mux) Events() <-chan Event {
	return m.events
}

// Sources returns the watched keys.
func (m *Mux) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.files))
	for k := range m.files {
		keys = append(keys, k)
	}
	return keys
}

// Stop cancels the watcher goroutines.
func (m *Mux) Stop() {
	m.cancel()
}

// Wait blocks until every goroutine has exited and Events is closed.
func (m *Mux) Wait() {
	<-m.done
}

func (m *Mux) run() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case ev, ok := <-m.fs.Events:
			if !ok {
				return
			}
			m.handle(ev)
		case err, ok := <-m.fs.Errors:
			if !ok {
				return
			}
			if !m.send(Event{Err: fmt.Errorf("watch: %w", err)}) {
				return
			}
		}
	}
}

func (m *Mux) handle(ev fsnotify.Event) {
	key := filepath.Clean(ev.Name)
	m.mu.Lock()
	st, ok := m.files[key]
	if ok && ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		st.offset = 0
		st.info = nil
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		if err := m.drain(key); err != nil {
			m.send(Event{Err: err})
		}
	}
}

func (m *Mux) pollLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			for _, key := range m.Sources() {
				if err := m.drain(key); err != nil {
					if !m.send(Event{Err: err}) {
						return
					}
				}
			}
		}
	}
}

// drain publishes every complete line written to key since the last read. A
// shrunk or replaced file is read again from the start. A trailing line
// without a newline is left for the next read.
func (m *Mux) drain(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.files[key]
	f, err := os.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			st.offset = 0
			st.info = nil
			return nil
		}
		return fmt.Errorf("open %s: %w", key, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", key, err)
	}
	if info.IsDir() {
		return fmt.Errorf("read %s: is a directory", key)
	}
	if (st.info != nil && !os.SameFile(st.info, info)) || info.Size() < st.offset {
		st.offset = 0
	}
	st.info = info
	if info.Size() == st.offset {
		return nil
	}

	if _, err := f.Seek(st.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", key, err)
	}
	r := bufio.NewReader(f)
	for {
		chunk, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s: %w", key, err)
		}
		st.offset += int64(len(chunk))
		if !m.send(Event{Line: Line{Source: key, Text: strings.TrimRight(chunk, "\r\n")}}) {
			return nil
		}
	}
}

func (m *Mux) send(evt Event) bool {
	select {
	case <-m.ctx.Done():
		return false
	case m.events <- evt:
		return true
	}
}
