// Command clogwench is the supervised-launch entry point named in
// spec.md §6: it starts central and wm as a process group sharing one
// CLI surface, reimplementing the role of
// _examples/original_source/tools/runner/src/main.rs (and its near
// duplicate devtools/runner) without that tool's test-harness and
// app-autostart code, which belong to the distillation's dropped
// integration-test scope rather than the runner binary itself.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/clogwench/wincore/appconfig"
)

func main() {
	cmd := appconfig.New("clogwench", "Launch central and wm together", run)
	appconfig.Execute(cmd)
}

func run(cfg *appconfig.Config) error {
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("clogwench: resolve own path: %w", err)
	}
	binDir := executableDir(self)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	central := exec.CommandContext(ctx, lookBinary(binDir, "central"), centralArgs(cfg)...)
	central.Stdout, central.Stderr = os.Stdout, os.Stderr
	if err := central.Start(); err != nil {
		return fmt.Errorf("clogwench: start central: %w", err)
	}
	slog.Info("clogwench: central started", "pid", central.Process.Pid)

	wm := exec.CommandContext(ctx, lookBinary(binDir, "wm"), wmArgs(cfg)...)
	wm.Stdout, wm.Stderr = os.Stdout, os.Stderr
	if err := wm.Start(); err != nil {
		cancel()
		_ = central.Wait()
		return fmt.Errorf("clogwench: start wm: %w", err)
	}
	slog.Info("clogwench: wm started", "pid", wm.Process.Pid)

	// Either child exiting ends the session: central dying leaves wm
	// with nothing to talk to, and wm dying leaves central with no
	// display to route windows onto.
	done := make(chan string, 2)
	go func() { _ = central.Wait(); done <- "central" }()
	go func() { _ = wm.Wait(); done <- "wm" }()

	remaining := 2
	select {
	case who := <-done:
		remaining--
		slog.Info("clogwench: child exited, shutting down the other", "process", who)
		cancel()
	case <-ctx.Done():
		slog.Info("clogwench: received shutdown signal")
	}

	_ = central.Process.Signal(syscall.SIGTERM)
	_ = wm.Process.Signal(syscall.SIGTERM)
	for ; remaining > 0; remaining-- {
		<-done
	}
	return nil
}

func centralArgs(cfg *appconfig.Config) []string {
	return []string{
		"--apps-addr", cfg.AppsAddr,
		"--wm-addr", cfg.WMAddr,
		"--debugger-addr", cfg.DebuggerAddr,
		"--debug=" + strconv.FormatBool(cfg.Debug),
	}
}

func wmArgs(cfg *appconfig.Config) []string {
	return []string{
		"--wmtype", string(cfg.WMType),
		"--width", strconv.Itoa(int(cfg.Width)),
		"--height", strconv.Itoa(int(cfg.Height)),
		"--scale", strconv.FormatFloat(cfg.Scale, 'f', -1, 64),
		"--wm-addr", cfg.WMAddr,
		"--debug=" + strconv.FormatBool(cfg.Debug),
	}
}

// lookBinary prefers a sibling binary built alongside clogwench, falling
// back to $PATH so `go install`-ed binaries still resolve.
func lookBinary(dir, name string) string {
	candidate := dir + string(os.PathSeparator) + name
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}

func executableDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == os.PathSeparator {
			return path[:i]
		}
	}
	return "."
}
