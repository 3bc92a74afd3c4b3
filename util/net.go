package util

import (
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
)

// IsNetworkClosed checks if the given error tells closing of network connection
func IsNetworkClosed(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Err.Error() == "use of closed network connection"
	}
	return false
}

// IsNetworkTimeout checks if the given error is network timeout
func IsNetworkTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsNetworkError checks if the given error comes from network or name resolution, as opposed to local errors
func IsNetworkError(err error) bool {
	if IsNetworkClosed(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE)
}

// DescribeNetworkError returns a short category of network error for metric labels
func DescribeNetworkError(err error) string {
	var dnsErr *net.DNSError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &dnsErr):
		return "resolve"
	case IsNetworkTimeout(err):
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "refused"
	case IsNetworkClosed(err), errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return "closed"
	case IsNetworkError(err):
		return "network"
	default:
		return "other"
	}
}

// ReadBufferSetter is implemented by TCP and UDP connections
type ReadBufferSetter interface {
	SetReadBuffer(bytes int) error
}

// TrySetReadBuffer attempts to set read buffer within the range given, halving the size on each failure
func TrySetReadBuffer(conn ReadBufferSetter, max int, min int) (int, error) {
	var err error
	val := max
	for val >= min {
		err = conn.SetReadBuffer(val)
		if err == nil {
			return val, nil
		}
		if !strings.HasSuffix(err.Error(), "setsockopt: no buffer space available") {
			return -1, err
		}
		val /= 2
	}
	if val != min {
		err = conn.SetReadBuffer(min)
		if err == nil {
			return min, nil
		}
	}
	return -1, err
}
