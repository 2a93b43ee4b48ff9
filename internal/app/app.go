package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/atomicstack/logtail-dash/internal/content"
	"github.com/atomicstack/logtail-dash/internal/dash"
	"github.com/atomicstack/logtail-dash/internal/format/table"
	"github.com/atomicstack/logtail-dash/internal/logging/events"
	"github.com/atomicstack/logtail-dash/internal/monitor"
	"github.com/atomicstack/logtail-dash/internal/ui"
	"github.com/atomicstack/logtail-dash/internal/watch"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("logtail-dash needs an interactive terminal")

// Config describes user-provided application options.
type Config struct {
	Sources        []string
	LinesMax       int
	TickRate       time.Duration
	IgnoreExisting bool
	DebugWindow    bool
	Layout         dash.Mode
	Poll           time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	sess, err := open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := requireTerminal(); err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Registry: sess.registry,
		State:    dash.NewState(cfg.Layout, cfg.DebugWindow),
		Events:   sess.mux.Events(),
		TickRate: cfg.TickRate,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		return err
	}
	return model.Err()
}

// session holds everything that outlives the UI: the monitors and the
// watcher feeding them.
type session struct {
	registry *monitor.Registry
	mux      *watch.Mux
}

// open resolves the sources, starts watching them and loads existing
// content. The watcher starts first so nothing appended during the load is
// missed.
func open(ctx context.Context, cfg Config) (*session, error) {
	sources, err := resolveSources(cfg.Sources)
	if err != nil {
		return nil, err
	}
	registry, err := monitor.NewRegistry(sources, cfg.LinesMax)
	if err != nil {
		return nil, err
	}
	for _, mon := range registry.Monitors() {
		events.Source.Registered(mon.Key, mon.Name, mon.Index)
	}

	mux, err := watch.New(registry.Keys(), watch.Options{Poll: cfg.Poll})
	if err != nil {
		return nil, fmt.Errorf("watch sources: %w", err)
	}
	sess := &session{registry: registry, mux: mux}

	if !cfg.IgnoreExisting {
		if err := loadExisting(ctx, registry); err != nil {
			sess.close()
			return nil, err
		}
	}
	events.Source.Summary(summary(registry))
	return sess, nil
}

func (s *session) close() {
	s.mux.Stop()
	s.mux.Wait()
}

// resolveSources maps the paths given on the command line to canonical
// keys. A path naming an already listed file, directly or through a
// symlink, is dropped.
func resolveSources(paths []string) ([]monitor.Source, error) {
	sources := make([]monitor.Source, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		key, err := watch.Canonical(path)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		sources = append(sources, monitor.Source{Key: key, Name: path})
	}
	return sources, nil
}

// loadExisting reads every source concurrently, then fills the buffers in
// registry order. The first read error cancels the remaining reads.
func loadExisting(ctx context.Context, registry *monitor.Registry) error {
	monitors := registry.Monitors()
	loaded := make([][]string, len(monitors))
	g, gctx := errgroup.WithContext(ctx)
	for i, mon := range monitors {
		i, mon := i, mon
		g.Go(func() error {
			lines, err := content.ReadFile(gctx, mon.Key)
			if err != nil {
				return fmt.Errorf("load %s: %w", mon.Name, err)
			}
			loaded[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, mon := range monitors {
		mon.Content.Load(loaded[i])
		events.Source.Loaded(mon.Key, len(loaded[i]), mon.Content.Len())
	}
	return nil
}

// summary renders one aligned row per monitor for the trace log.
func summary(registry *monitor.Registry) []string {
	rows := [][]string{{"#", "lines", "file"}}
	for _, mon := range registry.Monitors() {
		rows = append(rows, []string{
			strconv.Itoa(mon.Index),
			fmt.Sprintf("%d/%d", mon.Content.Len(), mon.Content.Cap()),
			mon.Name,
		})
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignRight, table.AlignLeft})
}

func requireTerminal() error {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
		}
	}
	return nil
}
