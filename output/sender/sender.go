// Package sender delivers syslog payloads to the configured server over UDP or TCP on best-effort basis
package sender

import (
	"net"
	"sync"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/util"
)

// netSender sends payloads through one long-lived connection, which is dropped on any error and re-dialed on the
// next send
//
// There's no retry: a payload failed to be sent is counted and lost
type netSender struct {
	logger    logger.Logger
	network   string
	address   string
	timeout   time.Duration
	debug     bool
	frame     func(payload string) string
	metrics   senderMetrics
	mutex     sync.Mutex
	conn      *util.NetConnWrapper
	closed    bool
	lastError time.Time
}

// NewSender creates a PayloadSender for the transport in config
func NewSender(parentLogger logger.Logger, config *relayconfig.RelayConfig, metricCreator promreg.MetricCreator) base.PayloadSender {
	s := &netSender{
		logger: parentLogger.WithFields(logger.Fields{
			defs.LabelComponent: "Sender",
			defs.LabelTransport: string(config.Transport),
			defs.LabelAddress:   config.Address(),
		}),
		network: string(config.Transport),
		address: config.Address(),
		timeout: config.Timeout,
		debug:   config.Debug,
		metrics: newSenderMetrics(metricCreator, string(config.Transport)),
	}
	switch config.Transport {
	case relayconfig.TransportTCP:
		s.frame = FrameOctetCounting
	default:
		s.network = string(relayconfig.TransportUDP)
		s.frame = FrameDatagram
	}
	return s
}

// Send delivers one payload, opening connection as needed; failures are only counted and logged in debug mode
//
// Connecting is done outside of the lock, so that each call is bounded by the timeout even when others are dialing
func (s *netSender) Send(payload string) {
	if !s.ensureConnection() {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		s.metrics.OnFailed(nil)
		return
	}
	if s.conn == nil {
		// dropped by a concurrent failure
		s.onError(&TransportError{Op: "write", Transport: s.network, Address: s.address, Err: net.ErrClosed})
		return
	}
	frame := s.frame(payload)
	if _, err := s.conn.WriteString(frame); err != nil {
		s.onError(&TransportError{Op: "write", Transport: s.network, Address: s.address, Err: err})
		s.drop()
		return
	}
	s.metrics.OnSent(len(frame))
}

// Close closes the current connection if any; payloads sent afterwards are discarded
func (s *netSender) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.drop()
	s.closed = true
}

// ensureConnection dials if there is no connection, returning false if dialing failed
//
// Concurrent callers may dial at the same time; the first connection is kept and the others are closed
func (s *netSender) ensureConnection() bool {
	s.mutex.Lock()
	ready := s.closed || s.conn != nil
	s.mutex.Unlock()
	if ready {
		return true
	}

	if s.debug {
		s.logger.Debugf("connecting")
	}
	conn, err := net.DialTimeout(s.network, s.address, s.timeout)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.onError(&TransportError{Op: "dial", Transport: s.network, Address: s.address, Err: err})
		return false
	}
	if s.closed || s.conn != nil {
		conn.Close()
		return true
	}
	s.conn = util.WrapNetConn(conn, 0, s.timeout)
	s.metrics.OnOpened()
	if s.debug {
		s.logger.Debugf("connected from %s", conn.LocalAddr())
	}
	return true
}

func (s *netSender) drop() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil && s.debug {
		s.logger.Debugf("failed to close connection: %s", err.Error())
	}
	s.conn = nil
}

func (s *netSender) onError(err error) {
	s.metrics.OnFailed(err)
	if !s.debug {
		return
	}
	now := time.Now()
	// a dead server would otherwise be reported for every single event of a large run
	if now.Sub(s.lastError) < time.Second {
		return
	}
	s.lastError = now
	s.logger.Warnf("failed to send: %s", err.Error())
}
