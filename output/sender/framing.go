package sender

import (
	"strconv"
)

// FrameDatagram returns the payload as it is, for one payload per datagram
func FrameDatagram(payload string) string {
	return payload
}

// FrameOctetCounting frames the payload as "LEN SP MSG" (RFC 6587 section 3.4.1) for stream transports
func FrameOctetCounting(payload string) string {
	return strconv.Itoa(len(payload)) + " " + payload
}
