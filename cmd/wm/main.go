// Command wm runs the window-manager engine against a platform.Backend
// selected by --wmtype, driving spec.md §4.2's per-frame loop against
// central's window-manager listener.
package main

import (
	"fmt"
	"log/slog"

	"github.com/clogwench/wincore/appconfig"
	"github.com/clogwench/wincore/cursor"
	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/platform/desktop"
	"github.com/clogwench/wincore/platform/headless"
	"github.com/clogwench/wincore/runctl"
	"github.com/clogwench/wincore/wire"
	"github.com/clogwench/wincore/wm"
)

func main() {
	cmd := appconfig.New("wm", "Run the wincore window manager engine", run)
	appconfig.Execute(cmd)
}

func run(cfg *appconfig.Config) error {
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	conn, err := wire.Dial("tcp", cfg.WMAddr)
	if err != nil {
		return fmt.Errorf("wm: dial central: %w", err)
	}
	if err := conn.Send(wire.Envelope{Command: wire.NewWMConnect()}); err != nil {
		return fmt.Errorf("wm: send WMConnect: %w", err)
	}
	ack, err := conn.Recv()
	if err != nil {
		return fmt.Errorf("wm: recv WMConnectResponse: %w", err)
	}
	if ack.Command.WMConnectResponse == nil {
		if ack.Command.WindowManagerDisconnected != nil {
			return fmt.Errorf("wm: central rejected connection: a window manager is already registered")
		}
		return fmt.Errorf("wm: expected wm_connect_response, got %q", ack.Command.Kind)
	}

	stop := &runctl.Flag{}
	watchdog := runctl.NewWatchdog(stop, cfg.Timeout)
	defer watchdog.Stop()

	inbound := make(chan wire.Envelope, 256)
	onErr := func(err error) {
		slog.Error("wm: connection to central ended", "err", err)
		stop.Set()
	}
	go func() {
		wire.ReadLoop(conn, inbound, onErr)
		close(inbound)
	}()

	manager := wm.NewManager(backend, stop, func(env wire.Envelope) {
		if err := conn.Send(env); err != nil {
			slog.Error("wm: send to central failed", "err", err)
			stop.Set()
		}
	})

	if arrow, err := cursor.Get(cursor.Arrow); err == nil {
		manager.SetCursor(arrow.Image)
	} else {
		slog.Warn("wm: could not load cursor", "err", err)
	}

	slog.Info("wm: connected to central", "addr", cfg.WMAddr, "backend", cfg.WMType)
	manager.Run(inbound)
	return conn.Close()
}

func newBackend(cfg *appconfig.Config) (platform.Backend, error) {
	switch cfg.WMType {
	case appconfig.WMHeadless:
		return headless.New(cfg.Width, cfg.Height, pixel.ARGB), nil
	case appconfig.WMNative:
		return desktop.New("wincore", cfg.Width, cfg.Height)
	default:
		return nil, fmt.Errorf("wm: unknown --wmtype %q", cfg.WMType)
	}
}
