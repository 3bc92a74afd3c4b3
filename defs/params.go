package defs

import (
	"time"
)

var (
	// SenderDefaultTimeout bounds connecting and writing to the syslog server unless overridden by ANSIBLE_SYSLOG_TIMEOUT
	//
	// A slow or unreachable syslog server must never stall the automation run for longer than this
	SenderDefaultTimeout = 2 * time.Second

	// SenderMaxTimeout is the largest timeout accepted from configuration
	SenderMaxTimeout = 10 * time.Second

	// SenderMinMessageBytes is the smallest max message size accepted from configuration
	//
	// RFC 3164 and RFC 5424 both require receivers to accept at least 480 octets
	SenderMinMessageBytes = 480

	// SenderDefaultMessageBytes is the default max size of one payload, slightly below the IPv4 UDP datagram limit
	SenderDefaultMessageBytes = 60 * 1024

	// DecoderMaxLineBytes is the max length of one JSON line read from the host event stream
	DecoderMaxLineBytes = 4 * 1024 * 1024

	// ListenerReadBufferSize is the buffer size in bytes to receive one datagram or TCP frame in the diagnostic listener
	ListenerReadBufferSize = 65536
)

// For testing and experiments
const (
	TestReadTimeout = 5 * time.Second
)

// EnableTestMode turns on test mode with very short timeouts
func EnableTestMode() {
	SenderDefaultTimeout = 200 * time.Millisecond
}
