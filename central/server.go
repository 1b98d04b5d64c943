package central

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/clogwench/wincore/wire"
	"github.com/clogwench/wincore/xerrors"
)

// Addrs is the set of listen addresses central binds, one per peer class
// (spec.md §4.1: apps, the window manager, and debuggers each connect on
// their own socket so central can tell them apart without a handshake
// field).
type Addrs struct {
	Apps      string
	WM        string
	Debuggers string
}

// Server is the central router process: three listeners feeding one
// router goroutine over a shared inbound channel.
type Server struct {
	addrs  Addrs
	table  *table
	router *router
}

func NewServer(addrs Addrs) *Server {
	t := newTable()
	return &Server{
		addrs:  addrs,
		table:  t,
		router: newRouter(t),
	}
}

// Run listens on all three addresses and blocks until ctx is cancelled.
// It returns early only if a listener cannot be opened; a later Accept
// failure is logged and ends that listener's accept loop, but Run keeps
// waiting on ctx.
func (s *Server) Run(ctx context.Context) error {
	lnApps, err := net.Listen("tcp", s.addrs.Apps)
	if err != nil {
		return fmt.Errorf("central: listen apps: %w", err)
	}
	defer lnApps.Close()

	lnWM, err := net.Listen("tcp", s.addrs.WM)
	if err != nil {
		return fmt.Errorf("central: listen wm: %w", err)
	}
	defer lnWM.Close()

	lnDebug, err := net.Listen("tcp", s.addrs.Debuggers)
	if err != nil {
		return fmt.Errorf("central: listen debuggers: %w", err)
	}
	defer lnDebug.Close()

	go s.router.run()

	go s.acceptLoop(ctx, lnApps, classApp)
	go s.acceptLoop(ctx, lnWM, classWM)
	go s.acceptLoop(ctx, lnDebug, classDebugger)

	<-ctx.Done()
	return ctx.Err()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener, class peerClass) {
	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			xerrors.Log(fmt.Errorf("central: accept failed for class %v: %w", class, err))
			return
		}
		go s.servePeer(nc, class)
	}
}

// servePeer owns one peer's reader and writer goroutines for the
// connection's lifetime. Per spec.md §4.1: a decode error or closed
// socket on either side tears down the peer and cascades the appropriate
// disconnect notification.
func (s *Server) servePeer(nc net.Conn, class peerClass) {
	conn := wire.NewConn(nc)
	p := newPeer(class, conn)

	done := make(chan struct{}, 2)
	onErr := func(err error) {
		slog.Debug("central: peer connection ended", "class", class, "peer", p.id, "remote", nc.RemoteAddr(), "err", err)
		done <- struct{}{}
	}

	readOut := make(chan wire.Envelope)
	go func() {
		wire.ReadLoop(conn, readOut, onErr)
		close(readOut)
	}()
	go wire.WriteLoop(conn, p.outbound, onErr)

	go func() {
		for env := range readOut {
			s.router.in <- inbound{from: p, env: env}
		}
	}()

	<-done
	conn.Close()

	switch class {
	case classApp:
		if !p.id.IsNil() {
			s.router.onAppDisconnected(p.id)
		}
	case classWM:
		s.router.onWMDisconnected(p)
	case classDebugger:
		s.table.removeDebugger(p)
	}
}
