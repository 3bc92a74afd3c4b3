package util

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNet(t *testing.T) {
	lsnr, lerr := net.Listen("tcp", "localhost:0")
	assert.NoError(t, lerr)

	t.Log("listening " + lsnr.Addr().String())

	go func() {
		cconn, cerr := net.Dial("tcp", lsnr.Addr().String())
		assert.NoError(t, cerr)

		cconn.Close()
	}()

	sconn, serr := lsnr.Accept()
	assert.NoError(t, serr)

	t.Run("set buffer", func(tt *testing.T) {
		maxSz := 1048576 * 16
		minSz := 4096
		sz, err := TrySetReadBuffer(sconn.(*net.TCPConn), maxSz, minSz)
		assert.NoError(tt, err)
		assert.GreaterOrEqual(tt, sz, minSz)
		assert.LessOrEqual(tt, sz, maxSz)
	})

	t.Run("check error", func(tt *testing.T) {
		sconn.Close()
		_, err := sconn.Write([]byte("Hi"))
		if assert.Error(tt, err) {
			assert.True(tt, IsNetworkError(err))
			assert.True(tt, IsNetworkClosed(err))
			assert.Equal(tt, "closed", DescribeNetworkError(err))
		}
	})

	lsnr.Close()

	t.Run("refused", func(tt *testing.T) {
		_, err := net.Dial("tcp", lsnr.Addr().String())
		if assert.Error(tt, err) {
			assert.True(tt, IsNetworkError(err))
			assert.Equal(tt, "refused", DescribeNetworkError(err))
		}
	})
}

func TestDescribeNetworkError(t *testing.T) {
	assert.Equal(t, "none", DescribeNetworkError(nil))
	assert.Equal(t, "resolve", DescribeNetworkError(&net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}}))
	assert.Equal(t, "other", DescribeNetworkError(fmt.Errorf("bad")))
	assert.False(t, IsNetworkError(fmt.Errorf("bad")))
}
