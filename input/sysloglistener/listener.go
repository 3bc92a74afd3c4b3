// Package sysloglistener receives syslog messages over UDP or TCP for local debugging and tests
package sysloglistener

import (
	"net"
	"sync"

	"github.com/relex/gotils/channels"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/input/syslogparser"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/util"
)

const udpReadBufferMax = 4 * 1024 * 1024
const udpReadBufferMin = 65536

// Received is one incoming payload with the result of parsing
type Received struct {
	Remote  string
	Raw     string
	Message syslogparser.Message // empty if Err is set
	Err     error
}

// Handler is invoked for each incoming payload, from one goroutine per UDP socket or TCP connection
type Handler func(received Received)

// Listener receives syslog payloads until stop is requested
//
// UDP: one payload per datagram. TCP: octet-counting (RFC 6587) or newline-terminated frames, detected per frame.
type Listener struct {
	logger      logger.Logger
	transport   relayconfig.Transport
	udpSocket   *net.UDPConn
	tcpSocket   *net.TCPListener
	handler     Handler
	stopRequest channels.Awaitable
	taskCounter *sync.WaitGroup    // counter to track connection tasks and the listener task itself
	stopped     channels.Awaitable // stopped is signaled when both listener and all child connections have come to stop
}

// NewListener opens a socket on the given address and returns a new Listener if successful
//
// The given address may use port zero, which would cause the port to be assigned by OS
//
// Returns the listener, actual address including final port, and error if failed
func NewListener(parentLogger logger.Logger, transport relayconfig.Transport, address string, handler Handler,
	stopRequest channels.Awaitable) (*Listener, string, error) {

	lsnr := &Listener{
		transport:   transport,
		handler:     handler,
		stopRequest: stopRequest,
		taskCounter: &sync.WaitGroup{},
	}
	var boundAddr string
	switch transport {
	case relayconfig.TransportTCP:
		socket, err := net.Listen("tcp", address)
		if err != nil {
			return nil, "", err
		}
		lsnr.tcpSocket = socket.(*net.TCPListener)
		boundAddr = socket.Addr().String()
	default:
		lsnr.transport = relayconfig.TransportUDP
		socket, err := net.ListenPacket("udp", address)
		if err != nil {
			return nil, "", err
		}
		lsnr.udpSocket = socket.(*net.UDPConn)
		boundAddr = socket.LocalAddr().String()
	}

	lsnr.logger = parentLogger.WithFields(logger.Fields{
		defs.LabelComponent: "SyslogListener",
		defs.LabelTransport: string(lsnr.transport),
		defs.LabelAddress:   boundAddr,
	})
	lsnr.logger.Info("start listening")

	// init taskCounter with 1 for the listener; Can't wait for Start() because WaitGroupAwaitable below would quit immediately if it's zero.
	lsnr.taskCounter.Add(1)
	lsnr.stopped = channels.NewWaitGroupAwaitable(lsnr.taskCounter)
	return lsnr, boundAddr, nil
}

// Start launches the receiving goroutine
func (lsnr *Listener) Start() {
	if lsnr.udpSocket != nil {
		go lsnr.runUDP()
	} else {
		go lsnr.runTCP()
	}
}

// Stopped returns an Awaitable which is signaled when the listener and all connections are closed
func (lsnr *Listener) Stopped() channels.Awaitable {
	return lsnr.stopped
}

func (lsnr *Listener) runUDP() {
	defer lsnr.taskCounter.Done()
	abortListener := lsnr.launchCloser(lsnr.logger, lsnr.udpSocket)

	if sz, err := util.TrySetReadBuffer(lsnr.udpSocket, udpReadBufferMax, udpReadBufferMin); err != nil {
		lsnr.logger.Warnf("error changing buffer size: %s", err.Error())
	} else {
		lsnr.logger.Infof("set UDP buffer size: %d", sz)
	}

	buf := make([]byte, defs.ListenerReadBufferSize)
	lsnr.logger.Info("start read loop")
	for {
		n, remote, err := lsnr.udpSocket.ReadFrom(buf)
		if err != nil {
			if lsnr.stopRequest.Peek() && util.IsNetworkClosed(err) {
				// closed on stop request
			} else {
				lsnr.logger.Error("read() error: ", err)
				abortListener.Signal()
			}
			break
		}
		lsnr.handle(remote.String(), string(buf[:n]))
	}
	lsnr.logger.Info("end read loop")
}

func (lsnr *Listener) handle(remote string, payload string) {
	received := Received{Remote: remote, Raw: payload}
	if msg, err := syslogparser.Parse(payload); err != nil {
		received.Err = err
	} else {
		received.Message = *msg
	}
	lsnr.handler(received)
}

// launchCloser starts a goroutine to close the socket or connection on stop request or abort signal
func (lsnr *Listener) launchCloser(clogger logger.Logger, closer interface{ Close() error }) *channels.SignalAwaitable {
	abort := channels.NewSignalAwaitable()
	go func() {
		channels.AnyAwaitables(lsnr.stopRequest, abort).Next(func() {
			if abort.Peek() {
				clogger.Info("abort")
			} else {
				clogger.Info("close on stop request")
			}
		}).WaitForever()
		closer.Close()
	}()
	return abort
}
