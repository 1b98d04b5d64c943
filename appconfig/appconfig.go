// Package appconfig is the shared CLI surface for cmd/central, cmd/wm,
// and cmd/clogwench, built on github.com/spf13/cobra and
// github.com/spf13/pflag, the same flag-parsing stack the teacher's own
// cmd package wires into its root command (cmd/root.go's Execute
// convention), rather than the teacher's bespoke cli/config scaffolding
// which solves a different (build-tooling) problem.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// WMType selects which platform.Backend cmd/wm drives.
type WMType string

const (
	WMNative   WMType = "native"
	WMHeadless WMType = "headless"
)

// Config holds every flag spec.md §6 names, parsed once at process
// startup.
type Config struct {
	WMType    WMType
	Width     int32
	Height    int32
	Scale     float64
	Datafiles []string
	Debug     bool
	Timeout   time.Duration

	AppsAddr     string
	WMAddr       string
	DebuggerAddr string
}

// defaults mirrors the values a bare invocation with no flags should
// produce.
func defaults() Config {
	return Config{
		WMType:       WMNative,
		Width:        1024,
		Height:       768,
		Scale:        1.0,
		Timeout:      60 * time.Second,
		AppsAddr:     "127.0.0.1:9001",
		WMAddr:       "127.0.0.1:9002",
		DebuggerAddr: "127.0.0.1:9003",
	}
}

// BindFlags registers spec.md §6's CLI surface on fs, writing parsed
// values into cfg. Callers invoke this from a cobra command's flag set
// before Execute runs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(wmTypeValue{cfg}, "wmtype", "window manager backend: native or headless")
	fs.Int32Var(&cfg.Width, "width", cfg.Width, "screen width in pixels")
	fs.Int32Var(&cfg.Height, "height", cfg.Height, "screen height in pixels")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "display scale factor")
	fs.StringArrayVar(&cfg.Datafiles, "datafile", cfg.Datafiles, "JSON datafile to preload (repeatable)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "watchdog timeout before the process force-exits")
	fs.StringVar(&cfg.AppsAddr, "apps-addr", cfg.AppsAddr, "listen address for application connections")
	fs.StringVar(&cfg.WMAddr, "wm-addr", cfg.WMAddr, "listen address for the window manager connection")
	fs.StringVar(&cfg.DebuggerAddr, "debugger-addr", cfg.DebuggerAddr, "listen address for debugger connections")
}

// wmTypeValue adapts cfg.WMType to pflag.Value so --wmtype is validated
// (only "native" or "headless" accepted) at parse time rather than left
// to whatever consumes the string later.
type wmTypeValue struct{ cfg *Config }

func (v wmTypeValue) String() string { return string(v.cfg.WMType) }
func (v wmTypeValue) Type() string   { return "string" }
func (v wmTypeValue) Set(s string) error {
	switch WMType(s) {
	case WMNative, WMHeadless:
		v.cfg.WMType = WMType(s)
		return nil
	default:
		return fmt.Errorf("appconfig: --wmtype must be %q or %q, got %q", WMNative, WMHeadless, s)
	}
}

// New builds a cobra.Command named use that parses spec.md §6's flags
// into a fresh Config before calling run. It mirrors the teacher's
// Execute()-wraps-rootCmd.Execute() error-handling convention.
func New(use, short string, run func(*Config) error) *cobra.Command {
	cfg := defaults()
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&cfg)
		},
	}
	BindFlags(cmd.Flags(), &cfg)
	return cmd
}

// Execute runs cmd and exits the process with status 1 on error,
// matching cmd/root.go's Execute helper.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Datafile is one preloaded JSON object collection, named by the path it
// was loaded from.
type Datafile struct {
	Name string
	Data json.RawMessage
}

// LoadDatafiles opens and decodes every path in paths as a JSON value,
// following the teacher's base/iox/jsonx Open/OpenFiles naming
// convention (that package's own decoder plumbing was not present in
// the retrieved corpus, so this is self-contained).
func LoadDatafiles(paths []string) ([]Datafile, error) {
	out := make([]Datafile, 0, len(paths))
	for _, p := range paths {
		df, err := openDatafile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, df)
	}
	return out, nil
}

func openDatafile(path string) (Datafile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Datafile{}, fmt.Errorf("appconfig: open %s: %w", path, err)
	}
	var raw json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return Datafile{}, fmt.Errorf("appconfig: decode %s: %w", path, err)
	}
	return Datafile{Name: path, Data: raw}, nil
}
