package wire

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/uid"
)

func TestConnSendRecvRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc := NewConn(client)
	sc := NewConn(server)

	sent := Envelope{
		Source:  uid.New(),
		Command: NewMouseDown(MouseDown{AppID: uid.New(), WindowID: uid.New(), Button: 1, X: 5, Y: 6}),
	}

	errc := make(chan error, 1)
	go func() { errc <- cc.Send(sent) }()

	got, err := sc.Recv()
	require.NoError(t, err)
	require.NoError(t, <-errc)

	assert.Equal(t, sent.Source, got.Source)
	assert.Equal(t, KindMouseDown, got.Command.Kind)
	require.NotNil(t, got.Command.MouseDown)
	assert.Equal(t, int32(5), got.Command.MouseDown.X)
}

func TestConnRecvRejectsMalformedCommand(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc := NewConn(client)
	sc := NewConn(server)

	// A command with Kind set but no populated variant fails Validate.
	bad := Envelope{Command: Command{Kind: KindMouseDown}}
	go func() { _ = cc.Send(bad) }()

	_, err := sc.Recv()
	assert.Error(t, err)
}

func TestConnCloseIsIdempotent(t *testing.T) {
	client, _ := net.Pipe()
	cc := NewConn(client)
	assert.NoError(t, cc.Close())
	assert.NoError(t, cc.Close())
}

func TestConnRecvReturnsEOFOnPeerClose(t *testing.T) {
	client, server := net.Pipe()
	sc := NewConn(server)

	go client.Close()

	_, err := sc.Recv()
	assert.ErrorIs(t, err, io.EOF)
}
