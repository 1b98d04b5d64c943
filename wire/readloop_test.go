package wire

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLoopDeliversThenReportsErrorOnClose(t *testing.T) {
	client, server := net.Pipe()
	sc := NewConn(server)
	cc := NewConn(client)

	out := make(chan Envelope, 4)
	errc := make(chan error, 1)
	go ReadLoop(sc, out, func(err error) { errc <- err })

	require.NoError(t, cc.Send(Envelope{Command: NewSystemShutdown()}))

	select {
	case env := <-out:
		assert.Equal(t, KindSystemShutdown, env.Command.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for envelope")
	}

	require.NoError(t, cc.Close())

	select {
	case err := <-errc:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for onErr")
	}
}

func TestWriteLoopStopsWhenChannelCloses(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	cc := NewConn(server)

	outbound := make(chan Envelope)
	done := make(chan struct{})
	go func() {
		WriteLoop(cc, outbound, func(error) {})
		close(done)
	}()

	close(outbound)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WriteLoop did not return after outbound closed")
	}
}
