// Command clockapp is a minimal client exercising the full wire protocol
// end to end: it opens one window and redraws a digital clock face once
// a second, reimplementing
// _examples/original_source/apps/digital-clock/src/main.rs in Go against
// wmclient instead of a PNG sprite sheet (no image assets ship in this
// repository, so digits are rendered as procedurally built segment
// glyphs rather than sliced from a bitmap font).
package main

import (
	"flag"
	"log/slog"
	"time"

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
		slog.Error("clockapp: connect failed", "err", err)
		return
	}
	defer client.Close()

	bounds := pixel.Rect{X: 50, Y: 50, W: 300, H: 120}
	win, err := client.OpenWindow(wire.WindowPlain, bounds, "Clock")
	if err != nil {
		slog.Error("clockapp: open window failed", "err", err)
		return
	}

	done := make(chan struct{})
	go func() {
		drainEvents(client)
		close(done)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			redraw(client, win.WindowID, bounds)
		}
	}
}

// drainEvents watches for SystemShutdown so the app exits cleanly instead
// of spinning forever once central tears down, matching the original's
// shutdown handling in its redraw loop.
func drainEvents(client *wmclient.Client) {
	for {
		env, err := client.Recv()
		if err != nil {
			return
		}
		if env.Command.SystemShutdown != nil {
			slog.Info("clockapp: system is shutting down, bye")
			return
		}
	}
}

func redraw(client *wmclient.Client, win uid.ID, bounds pixel.Rect) {
	if err := client.DrawRect(win, pixel.Rect{X: 0, Y: 0, W: bounds.W, H: bounds.H}, pixel.White); err != nil {
		slog.Error("clockapp: draw background failed", "err", err)
		return
	}

	now := time.Now()
	face := digitFace(now.Format("15:04:05"))
	if err := client.DrawImage(win, pixel.Rect{X: 20, Y: 40, W: face.Width, H: face.Height}, face); err != nil {
		slog.Error("clockapp: draw face failed", "err", err)
	}
}

const (
	digitW = 20
	digitH = 32
	gap    = 4
)

// segments maps each clock-face character to the seven-segment pattern
// (top, top-left, top-right, middle, bottom-left, bottom-right, bottom)
// that renders it.
var segments = map[byte][7]bool{
	'0': {true, true, true, false, true, true, true},
	'1': {false, false, true, false, false, true, false},
	'2': {true, false, true, true, true, false, true},
	'3': {true, false, true, true, false, true, true},
	'4': {false, true, true, true, false, true, false},
	'5': {true, true, false, true, false, true, true},
	'6': {true, true, false, true, true, true, true},
	'7': {true, false, true, false, false, true, false},
	'8': {true, true, true, true, true, true, true},
	'9': {true, true, true, true, false, true, true},
	':': {},
}

// digitFace renders s (e.g. "15:04:05") into a single buffer wide enough
// for every character, laid out left to right.
func digitFace(s string) *pixel.Buffer {
	width := int32(len(s)) * (digitW + gap)
	buf := pixel.New(uid.New(), width, digitH, pixel.ARGB)
	buf.Clear(pixel.White)

	x := int32(0)
	ink := pixel.Color{A: 0xff, R: 0, G: 0, B: 0}
	for i := 0; i < len(s); i++ {
		drawDigit(buf, x, segments[s[i]], ink)
		x += digitW + gap
	}
	return buf
}

func drawDigit(buf *pixel.Buffer, x int32, seg [7]bool, color pixel.Color) {
	const t = 3 // segment thickness
	half := digitH / 2
	if seg[0] { // top
		buf.FillRect(pixel.Rect{X: x, Y: 0, W: digitW, H: t}, color)
	}
	if seg[1] { // top-left
		buf.FillRect(pixel.Rect{X: x, Y: 0, W: t, H: half}, color)
	}
	if seg[2] { // top-right
		buf.FillRect(pixel.Rect{X: x + digitW - t, Y: 0, W: t, H: half}, color)
	}
	if seg[3] { // middle
		buf.FillRect(pixel.Rect{X: x, Y: half - t/2, W: digitW, H: t}, color)
	}
	if seg[4] { // bottom-left
		buf.FillRect(pixel.Rect{X: x, Y: half, W: t, H: half}, color)
	}
	if seg[5] { // bottom-right
		buf.FillRect(pixel.Rect{X: x + digitW - t, Y: half, W: t, H: half}, color)
	}
	if seg[6] { // bottom
		buf.FillRect(pixel.Rect{X: x, Y: digitH - t, W: digitW, H: t}, color)
	}
}
