// Command echoapp is a minimal client exercising mouse and keyboard
// input: it opens a window, moves a small square in response to arrow
// keys, and echoes what it last received as a debug log line,
// reimplementing
// _examples/original_source/apps/echo-app/src/main.rs in Go against
// wmclient.
package main

import (
	"flag"
	"log/slog"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
	"github.com/clogwench/wincore/wmclient"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9001", "central apps listen address")
	flag.Parse()

	client, err := wmclient.Connect(*addr)
	if err != nil {
		slog.Error("echoapp: connect failed", "err", err)
		return
	}
	defer client.Close()

	bounds := pixel.Rect{X: 50, Y: 50, W: 300, H: 300}
	win, err := client.OpenWindow(wire.WindowPlain, bounds, "Echo")
	if err != nil {
		slog.Error("echoapp: open window failed", "err", err)
		return
	}

	pattern := checkerboard()
	px, py := int32(50), int32(50)
	redraw(client, win.WindowID, bounds, px, py, pattern)

	for {
		env, err := client.Recv()
		if err != nil {
			slog.Info("echoapp: connection ended", "err", err)
			return
		}
		cmd := env.Command

		switch {
		case cmd.KeyDown != nil:
			slog.Debug("echoapp: key down", "code", cmd.KeyDown.Code, "key", cmd.KeyDown.Key)
			switch cmd.KeyDown.Key {
			case "ArrowRight":
				px++
			case "ArrowLeft":
				px--
			case "ArrowUp":
				py--
			case "ArrowDown":
				py++
			}
			redraw(client, win.WindowID, bounds, px, py, pattern)

		case cmd.MouseDown != nil:
			// A click carries no position state this app tracks, so it is
			// only logged, not redrawn.
			slog.Debug("echoapp: mouse down", "x", cmd.MouseDown.X, "y", cmd.MouseDown.Y)

		case cmd.CloseWindowResponse != nil:
			slog.Info("echoapp: only window closed, shutting down")
			return

		case cmd.SystemShutdown != nil:
			slog.Info("echoapp: system is shutting down, bye")
			return

		case cmd.WindowResized != nil:
			bounds.W = cmd.WindowResized.Size.W
			bounds.H = cmd.WindowResized.Size.H
			redraw(client, win.WindowID, bounds, px, py, pattern)
		}
	}
}

func redraw(client *wmclient.Client, win uid.ID, bounds pixel.Rect, px, py int32, pattern *pixel.Buffer) {
	if err := client.DrawRect(win, pixel.Rect{X: 0, Y: 0, W: bounds.W, H: bounds.H}, pixel.White); err != nil {
		slog.Error("echoapp: draw background failed", "err", err)
		return
	}
	if err := client.DrawRect(win, pixel.Rect{X: px, Y: py, W: 10, H: 10}, pixel.Color{A: 0xff, R: 0, G: 200, B: 255}); err != nil {
		slog.Error("echoapp: draw player failed", "err", err)
	}
	if err := client.DrawImage(win, pixel.Rect{X: 40, Y: 40, W: 50, H: 50}, pattern); err != nil {
		slog.Error("echoapp: draw pattern failed", "err", err)
	}
}

func checkerboard() *pixel.Buffer {
	buf := pixel.New(uid.New(), 2, 2, pixel.ARGB)
	buf.SetPixel(0, 0, pixel.White)
	buf.SetPixel(1, 0, pixel.Color{A: 0xff})
	buf.SetPixel(0, 1, pixel.Color{A: 0xff})
	buf.SetPixel(1, 1, pixel.White)
	return buf
}
