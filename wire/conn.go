package wire

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
)

// Conn is a framed JSON stream over a net.Conn: values are written and
// read back-to-back with no extra delimiter (JSON's own self-termination
// is the frame boundary), per spec.md §6. Send is safe for concurrent use;
// Recv is intended for a single reader goroutine.
type Conn struct {
	nc  net.Conn
	dec *json.Decoder
	enc *json.Encoder

	writeMu sync.Mutex
	closeMu sync.Mutex
	closed  bool
}

// NewConn wraps an already-established connection.
func NewConn(nc net.Conn) *Conn {
	return &Conn{
		nc:  nc,
		dec: json.NewDecoder(nc),
		enc: json.NewEncoder(nc),
	}
}

// Dial connects to addr and wraps the resulting connection.
func Dial(network, addr string) (*Conn, error) {
	nc, err := net.Dial(network, addr)
	if err != nil {
		return nil, fmt.Errorf("wire: dial %s: %w", addr, err)
	}
	return NewConn(nc), nil
}

// Send encodes and writes one envelope. Concurrent callers are
// serialized so that two goroutines writing on the same connection never
// interleave partial JSON values.
func (c *Conn) Send(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.enc.Encode(env); err != nil {
		return fmt.Errorf("wire: send: %w", err)
	}
	return nil
}

// Recv blocks until the next envelope is decoded, or returns an error
// (including io.EOF on a clean peer close) on decode failure.
func (c *Conn) Recv() (Envelope, error) {
	var env Envelope
	if err := c.dec.Decode(&env); err != nil {
		return Envelope{}, err
	}
	if err := env.Command.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Close closes the underlying connection. It is safe to call more than
// once.
func (c *Conn) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.nc.Close()
}

// RemoteAddr returns the address of the peer, for logging.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}
