package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/logtail-dash/internal/app"
	"github.com/atomicstack/logtail-dash/internal/config"
	"github.com/atomicstack/logtail-dash/internal/logging"
	"github.com/atomicstack/logtail-dash/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	if logging.TraceEnabled() {
		traceStartup(runtimeCfg)
	}

	err := app.Run(runtimeCfg.App)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintln(os.Stderr, fatalMessage(err))
		os.Exit(1)
	}
}

// fatalMessage points at the log file, where the error and any trace are.
func fatalMessage(err error) string {
	return fmt.Sprintf("Error: %v (see %s)", err, logging.Path())
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.ConfigFile,
		"sources":    cfg.App.Sources,
		"layout":     cfg.App.Layout.String(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes the standard descriptors.
func collectTTYDetails() ttyDetails {
	return probeTTYs(os.Stdin, os.Stdout, os.Stderr)
}

// probeTTYs reports terminal support and size for each file. The first
// terminal with a readable size becomes the detected one.
func probeTTYs(files ...*os.File) ttyDetails {
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(files))}
	for _, f := range files {
		entry := ttyProbeResult{Name: probeName(f)}
		fd := int(f.Fd())
		if fd < 0 || !term.IsTerminal(fd) {
			details.Probes = append(details.Probes, entry)
			continue
		}
		entry.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = width, height
			if details.Detected == nil {
				details.Detected = &ttyDetected{Source: entry.Name, Width: width, Height: height}
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}

func probeName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return f.Name()
}
