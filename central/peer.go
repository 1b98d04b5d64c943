// Package central implements the message-routing server: it accepts app,
// window-manager, and debugger connections, assigns identities, and
// forwards commands between them per the routing rules in spec.md §4.1.
package central

import (
	"log/slog"

	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// peerClass distinguishes the three classes of peer central accepts on
// distinct listeners.
type peerClass int

const (
	classApp peerClass = iota
	classWM
	classDebugger
)

// peer is one connected socket: its class, the identity central assigned
// it (Nil until assigned, e.g. before AppConnect), and the outbound
// channel its dedicated writer goroutine drains.
type peer struct {
	class    peerClass
	id       uid.ID // app id for classApp; Nil for classWM/classDebugger
	conn     *wire.Conn
	outbound chan wire.Envelope
}

func newPeer(class peerClass, conn *wire.Conn) *peer {
	return &peer{
		class:    class,
		conn:     conn,
		outbound: make(chan wire.Envelope, 64),
	}
}

// send enqueues env on the peer's outbound channel, preserving per-peer
// enqueue order (spec.md §5). It never blocks the router goroutine for
// long: the channel is buffered, and a full buffer indicates a wedged
// peer. The message is dropped and logged rather than stalling routing;
// the peer's writer will still surface the underlying dead-peer condition
// through its own Send errors.
func (p *peer) send(env wire.Envelope) {
	select {
	case p.outbound <- env:
	default:
		slog.Error("central: peer outbound buffer full, dropping message", "peer", p.id, "kind", env.Command.Kind)
	}
}
