package util

import (
	"net"
	"time"
)

// NetConnWrapper wraps a connection to bound every read and write call by its own deadline
//
// Zero timeout disables the deadline for that direction
type NetConnWrapper struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// WrapNetConn creates a NetConnWrapper for given network connection
func WrapNetConn(conn net.Conn, readTimeout time.Duration, writeTimeout time.Duration) *NetConnWrapper {
	return &NetConnWrapper{
		Conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (cw *NetConnWrapper) Read(p []byte) (int, error) {
	if cw.readTimeout > 0 {
		if err := cw.Conn.SetReadDeadline(time.Now().Add(cw.readTimeout)); err != nil {
			return 0, err
		}
	}
	return cw.Conn.Read(p)
}

func (cw *NetConnWrapper) Write(p []byte) (int, error) {
	if cw.writeTimeout > 0 {
		if err := cw.Conn.SetWriteDeadline(time.Now().Add(cw.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return cw.Conn.Write(p)
}

// WriteString writes the whole string in one call, as one datagram for packet connections
func (cw *NetConnWrapper) WriteString(s string) (int, error) {
	return cw.Write([]byte(s))
}
