package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/logtail-dash/internal/app"
	"github.com/atomicstack/logtail-dash/internal/dash"
)

// ErrNoFiles is returned when no file paths were given on the command line.
var ErrNoFiles = errors.New("at least one file path is required")

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envLinesMax       = "LOGTAIL_DASH_LINES_MAX"
	envTickRate       = "LOGTAIL_DASH_TICK_RATE"
	envIgnoreExisting = "LOGTAIL_DASH_IGNORE_EXISTING"
	envLayout         = "LOGTAIL_DASH_LAYOUT"
	envPoll           = "LOGTAIL_DASH_POLL"
	envLogFile        = "LOGTAIL_DASH_LOG_FILE"
	envTrace          = "LOGTAIL_DASH_TRACE"
	envConfig         = "LOGTAIL_DASH_CONFIG"
)

const (
	defaultLinesMax = 100
	defaultTickRate = 200
)

// values is the flat set of settings every layer can supply.
type values struct {
	linesMax       int
	tickRate       int
	ignoreExisting bool
	debugWindow    bool
	layout         string
	poll           int
	logFile        string
	trace          bool
	configFile     string
}

func defaults() values {
	return values{
		linesMax: defaultLinesMax,
		tickRate: defaultTickRate,
		layout:   dash.Horizontal.String(),
	}
}

// fileValues mirrors the TOML config file. Pointers distinguish unset keys.
type fileValues struct {
	LinesMax       *int    `toml:"lines_max"`
	TickRate       *int    `toml:"tick_rate"`
	IgnoreExisting *bool   `toml:"ignore_existing"`
	Layout         *string `toml:"layout"`
	Poll           *int    `toml:"poll"`
	LogFile        *string `toml:"log_file"`
	Trace          *bool   `toml:"trace"`
}

// Load parses configuration from CLI arguments, environment variables and
// the config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	var flagVals values
	fs := newFlagSet(&flagVals)
	files, err := parseInterspersed(fs, args)
	if err != nil {
		return Config{}, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[canonicalFlag(f.Name)] = true })

	explicitConfig := set["config"] || envOrDefault(env, envConfig, "") != ""
	configPath := defaultConfigPath(env)
	configPath = envOrDefault(env, envConfig, configPath)
	if set["config"] {
		configPath = flagVals.configFile
	}

	v := defaults()
	if configPath != "" {
		if err := applyFile(&v, configPath, explicitConfig); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&v, env)
	applyFlags(&v, flagVals, set)

	if len(files) == 0 {
		return Config{}, ErrNoFiles
	}

	mode, err := dash.ParseMode(v.layout)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Sources:        files,
			LinesMax:       v.linesMax,
			TickRate:       time.Duration(v.tickRate) * time.Millisecond,
			IgnoreExisting: v.ignoreExisting,
			DebugWindow:    v.debugWindow,
			Layout:         mode,
			Poll:           time.Duration(v.poll) * time.Millisecond,
		},
		Logging: Logging{
			FilePath: v.logFile,
			Trace:    v.trace,
		},
		ConfigFile: configPath,
		Flags: map[string]string{
			"linesMax":       strconv.Itoa(v.linesMax),
			"tickRate":       strconv.Itoa(v.tickRate),
			"ignoreExisting": strconv.FormatBool(v.ignoreExisting),
			"debugWindow":    strconv.FormatBool(v.debugWindow),
			"layout":         mode.String(),
			"poll":           strconv.Itoa(v.poll),
			"config":         configPath,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newFlagSet(v *values) *flag.FlagSet {
	fs := flag.NewFlagSet("logtail-dash", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.IntVar(&v.linesMax, "lines-max", defaultLinesMax, "maximum number of lines kept per file")
	fs.IntVar(&v.linesMax, "l", defaultLinesMax, "shorthand for --lines-max")
	fs.IntVar(&v.tickRate, "tick-rate", defaultTickRate, "redraw interval in milliseconds")
	fs.IntVar(&v.tickRate, "t", defaultTickRate, "shorthand for --tick-rate")
	fs.BoolVar(&v.ignoreExisting, "ignore-existing", false, "skip lines already present in the files")
	fs.BoolVar(&v.ignoreExisting, "i", false, "shorthand for --ignore-existing")
	fs.BoolVar(&v.debugWindow, "debug-window", false, "reserve a debug window (no visible effect)")
	fs.BoolVar(&v.debugWindow, "d", false, "shorthand for --debug-window")
	fs.StringVar(&v.layout, "layout", dash.Horizontal.String(), "initial layout: horizontal or vertical")
	fs.IntVar(&v.poll, "poll", 0, "also re-read files every N milliseconds (0 disables)")
	fs.StringVar(&v.logFile, "log-file", "", "path to the log file")
	fs.BoolVar(&v.trace, "trace", false, "enable verbose JSON trace logging")
	fs.StringVar(&v.configFile, "config", "", "path to a TOML config file")
	return fs
}

var shorthands = map[string]string{
	"l": "lines-max",
	"t": "tick-rate",
	"i": "ignore-existing",
	"d": "debug-window",
}

func canonicalFlag(name string) string {
	if long, ok := shorthands[name]; ok {
		return long
	}
	return name
}

// parseInterspersed lets file paths and flags appear in any order. Everything
// after a "--" terminator is a path.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var files []string
	rest := args
	for {
		before := rest
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			return files, nil
		}
		if consumed := len(before) - len(rest); consumed > 0 && before[consumed-1] == "--" {
			return append(files, rest...), nil
		}
		files = append(files, rest[0])
		rest = rest[1:]
	}
}

// Usage returns the command-line help text.
func Usage() string {
	var v values
	fs := newFlagSet(&v)
	var b strings.Builder
	fs.SetOutput(&b)
	fmt.Fprintf(&b, "Usage: logtail-dash [flags] FILE...\n\nTail several log files in one terminal dashboard.\n\nFlags:\n")
	fs.PrintDefaults()
	return b.String()
}

func defaultConfigPath(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "logtail-dash", "config.toml")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "logtail-dash", "config.toml")
	}
	return ""
}

// applyFile layers the TOML file at path over v. A missing file is only an
// error when the path was given explicitly.
func applyFile(v *values, path string, explicit bool) error {
	var fv fileValues
	md, err := toml.DecodeFile(path, &fv)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	if fv.LinesMax != nil {
		v.linesMax = *fv.LinesMax
	}
	if fv.TickRate != nil {
		v.tickRate = *fv.TickRate
	}
	if fv.IgnoreExisting != nil {
		v.ignoreExisting = *fv.IgnoreExisting
	}
	if fv.Layout != nil {
		v.layout = *fv.Layout
	}
	if fv.Poll != nil {
		v.poll = *fv.Poll
	}
	if fv.LogFile != nil {
		v.logFile = *fv.LogFile
	}
	if fv.Trace != nil {
		v.trace = *fv.Trace
	}
	return nil
}

func applyEnv(v *values, env map[string]string) {
	v.linesMax = envOrInt(env, envLinesMax, v.linesMax)
	v.tickRate = envOrInt(env, envTickRate, v.tickRate)
	v.ignoreExisting = envOrBool(env, envIgnoreExisting, v.ignoreExisting)
	v.layout = envOrDefault(env, envLayout, v.layout)
	v.poll = envOrInt(env, envPoll, v.poll)
	v.logFile = envOrDefault(env, envLogFile, v.logFile)
	v.trace = envOrBool(env, envTrace, v.trace)
}

func applyFlags(v *values, flags values, set map[string]bool) {
	if set["lines-max"] {
		v.linesMax = flags.linesMax
	}
	if set["tick-rate"] {
		v.tickRate = flags.tickRate
	}
	if set["ignore-existing"] {
		v.ignoreExisting = flags.ignoreExisting
	}
	if set["debug-window"] {
		v.debugWindow = flags.debugWindow
	}
	if set["layout"] {
		v.layout = flags.layout
	}
	if set["poll"] {
		v.poll = flags.poll
	}
	if set["log-file"] {
		v.logFile = flags.logFile
	}
	if set["trace"] {
		v.trace = flags.trace
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits. No file paths or an explicit help
// request print usage and exit 0; any other error exits 2.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, ErrNoFiles) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stdout, Usage())
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks value ranges.
func Validate(cfg Config) error {
	if len(cfg.App.Sources) == 0 {
		return ErrNoFiles
	}
	if cfg.App.LinesMax < 1 {
		return fmt.Errorf("lines-max must be >= 1 (got %d)", cfg.App.LinesMax)
	}
	if cfg.App.TickRate < time.Millisecond {
		return fmt.Errorf("tick-rate must be >= 1 (got %d)", cfg.App.TickRate.Milliseconds())
	}
	if cfg.App.Poll < 0 {
		return fmt.Errorf("poll must be >= 0 (got %d)", cfg.App.Poll.Milliseconds())
	}
	return nil
}
