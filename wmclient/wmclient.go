// Package wmclient is the application-side SDK for speaking the wire
// protocol: connect, open a window, draw into it, and receive input
// events. Grounded on
// _examples/original_source/common/src/client.rs, which plays the same
// role for the original Rust apps.
package wmclient

import (
	"fmt"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// Client owns one connection to central's app-facing listener. It is not
// safe for concurrent Send calls from multiple goroutines beyond what
// wire.Conn already serializes; Recv is meant for a single reader.
type Client struct {
	conn  *wire.Conn
	appID uid.ID
}

// Connect dials addr and completes the AppConnect handshake, blocking
// until central assigns an app id.
func Connect(addr string) (*Client, error) {
	conn, err := wire.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	if err := conn.Send(wire.Envelope{Command: wire.NewAppConnect()}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("wmclient: send AppConnect: %w", err)
	}
	env, err := conn.Recv()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("wmclient: recv AppConnectResponse: %w", err)
	}
	if env.Command.AppConnectResponse == nil {
		conn.Close()
		return nil, fmt.Errorf("wmclient: expected app_connect_response, got %q", env.Command.Kind)
	}
	return &Client{conn: conn, appID: env.Command.AppConnectResponse.AppID}, nil
}

// AppID returns the id central assigned this connection.
func (c *Client) AppID() uid.ID { return c.appID }

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// OpenWindow requests a window of the given type, bounds, and title, and
// blocks for the response carrying the window id central assigned and the
// window's bounds.
func (c *Client) OpenWindow(wt wire.WindowType, bounds pixel.Rect, title string) (wire.OpenWindowResponse, error) {
	cmd := wire.NewOpenWindowCommand(wt, wire.Bounds{X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H}, title)
	if err := c.conn.Send(wire.Envelope{Command: cmd}); err != nil {
		return wire.OpenWindowResponse{}, fmt.Errorf("wmclient: send OpenWindowCommand: %w", err)
	}
	for {
		env, err := c.conn.Recv()
		if err != nil {
			return wire.OpenWindowResponse{}, fmt.Errorf("wmclient: recv OpenWindowResponse: %w", err)
		}
		if env.Command.OpenWindowResponse != nil {
			return *env.Command.OpenWindowResponse, nil
		}
		// Ignore anything else (e.g. a stray input event racing the open)
		// until the response we're actually waiting for arrives.
	}
}

// DrawRect fills rect of window's back buffer with color.
func (c *Client) DrawRect(window uid.ID, rect pixel.Rect, color pixel.Color) error {
	cmd := wire.NewDrawRectCommand(wire.DrawRectCommand{
		AppID:    c.appID,
		WindowID: window,
		Rect:     wire.Bounds{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H},
		Color:    wire.WireColor{A: color.A, R: color.R, G: color.G, B: color.B},
	})
	return c.send(cmd, "DrawRectCommand")
}

// DrawImage blits buf into window's back buffer at rect, tiling if buf is
// smaller than rect.
func (c *Client) DrawImage(window uid.ID, rect pixel.Rect, buf *pixel.Buffer) error {
	layout := "argb"
	if buf.Layout == pixel.RGB565 {
		layout = "rgb565"
	}
	cmd := wire.NewDrawImageCommand(wire.DrawImageCommand{
		AppID:    c.appID,
		WindowID: window,
		Rect:     wire.Bounds{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H},
		Buffer: wire.WireBuffer{
			ID:     buf.ID,
			Width:  buf.Width,
			Height: buf.Height,
			Layout: layout,
			Data:   buf.Data,
		},
	})
	return c.send(cmd, "DrawImageCommand")
}

func (c *Client) send(cmd wire.Command, what string) error {
	if err := c.conn.Send(wire.Envelope{Command: cmd}); err != nil {
		return fmt.Errorf("wmclient: send %s: %w", what, err)
	}
	return nil
}

// Recv blocks for the next envelope addressed to this app (input events,
// CloseWindowResponse, WindowResized).
func (c *Client) Recv() (wire.Envelope, error) {
	return c.conn.Recv()
}
