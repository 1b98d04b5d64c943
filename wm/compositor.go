package wm

import (
	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
)

// Decoration colors. Focused titlebars are drawn brighter so focus is
// visible without relying on any text label.
var (
	ScreenBackground = pixel.Color{A: 0xff, R: 0x20, G: 0x20, B: 0x20}
	BorderColor      = pixel.Color{A: 0xff, R: 0x60, G: 0x60, B: 0x60}
	TitlebarColor    = pixel.Color{A: 0xff, R: 0x40, G: 0x40, B: 0x48}
	TitlebarFocused  = pixel.Color{A: 0xff, R: 0x30, G: 0x60, B: 0xa0}
	CloseButtonColor = pixel.Color{A: 0xff, R: 0xc0, G: 0x40, B: 0x40}
	ResizeGripColor  = pixel.Color{A: 0xff, R: 0x80, G: 0x80, B: 0x80}
	PreviewOutline   = pixel.Color{A: 0xff, R: 0xff, G: 0xff, B: 0xff}
)

// compose paints the current scene onto backend, back to front, per
// spec.md §4.5. It performs no allocation: every buffer it reads was
// already registered with backend during reconciliation.
func (m *Manager) compose() {
	b := m.backend
	b.Clear(ScreenBackground)

	for _, id := range m.state.ZOrder {
		w := m.state.Windows[id]
		if w == nil {
			continue
		}
		b.FillRect(w.ExternalBounds(), BorderColor)

		titlebarColor := TitlebarColor
		if m.state.Focused == id {
			titlebarColor = TitlebarFocused
		}
		b.FillRect(w.TitlebarBounds(), titlebarColor)
		if w.TitleBuffer != nil {
			b.DrawImage(w.TitlebarBounds().Min(), w.TitleBuffer.Bounds(), w.TitleBuffer)
		}
		b.FillRect(w.CloseButtonBounds(), CloseButtonColor)

		if w.BackBuffer != nil {
			b.DrawImage(w.ContentBounds().Min(), w.BackBuffer.Bounds(), w.BackBuffer)
		}

		b.FillRect(w.ResizeBounds(), ResizeGripColor)
	}

	if m.state.ResizePreview != nil {
		drawOutline(b, *m.state.ResizePreview, PreviewOutline)
	}

	cursor := m.cursorBuffer()
	if cursor != nil {
		b.DrawImage(m.backend.CursorPosition(), cursor.Bounds(), cursor)
	}

	b.ServiceLoop()
}

// drawOutline paints a one-pixel-wide border, used for the resize
// preview where a filled DrawRect would obscure the window underneath.
func drawOutline(b platform.Backend, r pixel.Rect, color pixel.Color) {
	const w = 1
	b.DrawRect(r, color, w)
}
