package fbdev

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/clogwench/wincore/pixel"
)

// Linux input_event type/code constants this reader cares about
// (linux/input-event-codes.h). Only the subset exercised by
// _examples/original_source/plat/native-linux/src/input.rs is named.
const (
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	relX = 0x00
	relY = 0x01

	absX = 0x00
	absY = 0x01

	btnLeft = 0x110
)

// inputEvent mirrors struct input_event on 64-bit Linux: two timeval
// fields (16 bytes total), then type, code, value.
type inputEvent struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}

const inputEventSize = 24

// evdevReader continuously decodes raw input_event records from one
// /dev/input/eventN device and feeds synthesized cursor/button/key
// state back into a Backend, the same role as input.rs's
// setup_evdev_watcher thread.
type evdevReader struct {
	f    *os.File
	back *Backend
	done chan struct{}
}

func openEvdev(path string, back *Backend) (*evdevReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &evdevReader{f: f, back: back, done: make(chan struct{})}
	go r.run()
	return r, nil
}

func (r *evdevReader) close() {
	close(r.done)
	r.f.Close()
}

func (r *evdevReader) run() {
	buf := make([]byte, inputEventSize)
	screen := r.back.screen.Bounds()
	var cx, cy float64

	for {
		select {
		case <-r.done:
			return
		default:
		}

		n, err := r.f.Read(buf)
		if err != nil || n != inputEventSize {
			if err != nil {
				return
			}
			continue
		}
		ev := decodeInputEvent(buf)

		switch ev.Type {
		case evKey:
			pressed := ev.Value != 0
			if ev.Code == btnLeft {
				r.back.injectButton(int32(ev.Code), pressed)
			} else {
				r.back.injectKey(int32(ev.Code), keyName(ev.Code), pressed)
			}

		case evRel:
			switch ev.Code {
			case relX:
				cx += float64(ev.Value)
			case relY:
				cy += float64(ev.Value)
			}
			cx = clamp(cx, 0, float64(screen.W))
			cy = clamp(cy, 0, float64(screen.H))
			r.back.injectMouseMove(pixel.Point{X: int32(cx), Y: int32(cy)})

		case evAbs:
			const maxAxis = 32767.0
			switch ev.Code {
			case absX:
				cx = float64(ev.Value) / maxAxis * float64(screen.W)
			case absY:
				cy = float64(ev.Value) / maxAxis * float64(screen.H)
				r.back.injectMouseMove(pixel.Point{X: int32(cx), Y: int32(cy)})
			}
		}
	}
}

func decodeInputEvent(b []byte) inputEvent {
	return inputEvent{
		Sec:   int64(binary.LittleEndian.Uint64(b[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(b[8:16])),
		Type:  binary.LittleEndian.Uint16(b[16:18]),
		Code:  binary.LittleEndian.Uint16(b[18:20]),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// keyName renders an unrecognized evdev key code as a stable, loggable
// string; PollKeys' consumers key off Code for real matching.
func keyName(code uint16) string {
	return fmt.Sprintf("key-%d", code)
}
