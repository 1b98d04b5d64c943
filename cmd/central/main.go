// Command central runs the router process of spec.md §4.1: three
// listeners (apps, window manager, debuggers) feeding one routing
// goroutine.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clogwench/wincore/appconfig"
	"github.com/clogwench/wincore/central"
)

func main() {
	cmd := appconfig.New("central", "Run the wincore central router", run)
	appconfig.Execute(cmd)
}

func run(cfg *appconfig.Config) error {
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if len(cfg.Datafiles) > 0 {
		datafiles, err := appconfig.LoadDatafiles(cfg.Datafiles)
		if err != nil {
			return err
		}
		slog.Info("central: preloaded datafiles", "count", len(datafiles))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := central.NewServer(central.Addrs{
		Apps:      cfg.AppsAddr,
		WM:        cfg.WMAddr,
		Debuggers: cfg.DebuggerAddr,
	})

	slog.Info("central: listening", "apps", cfg.AppsAddr, "wm", cfg.WMAddr, "debuggers", cfg.DebuggerAddr)
	err := srv.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
