package util

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNetConnWrapper(t *testing.T) {
	socket, err := net.Listen("tcp", "localhost:0")
	if !assert.Nil(t, err) {
		return
	}
	defer socket.Close()
	serverAddr := socket.Addr()
	go func() {
		client, cerr := net.Dial(serverAddr.Network(), serverAddr.String())
		if !assert.Nil(t, cerr) {
			return
		}
		defer client.Close()
		wrapped := WrapNetConn(client, 0, time.Second)
		_, cerr = wrapped.WriteString("Foo\n")
		assert.Nil(t, cerr)
		time.Sleep(200 * time.Millisecond)
		_, cerr = wrapped.WriteString("Bar\n")
		assert.Nil(t, cerr)
	}()
	server, err := socket.Accept()
	if !assert.Nil(t, err) {
		return
	}
	defer server.Close()
	reader := bufio.NewReaderSize(WrapNetConn(server, 50*time.Millisecond, 0), 1024)
	{
		ln, _, err := reader.ReadLine()
		assert.Nil(t, err)
		assert.Equal(t, "Foo", string(ln))
	}
	{
		// should timeout after 50ms
		_, _, err := reader.ReadLine()
		if !assert.True(t, IsNetworkTimeout(err)) {
			t.Error(err)
		}
	}
	time.Sleep(250 * time.Millisecond)
	{
		ln, _, err := reader.ReadLine()
		assert.Nil(t, err)
		assert.Equal(t, "Bar", string(ln))
	}
}
