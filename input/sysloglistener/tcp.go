package sysloglistener

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/util"
)

func (lsnr *Listener) runTCP() {
	abortListener := lsnr.launchCloser(lsnr.logger, lsnr.tcpSocket)

	lsnr.logger.Info("start accept loop")
	for {
		conn, err := lsnr.tcpSocket.AcceptTCP()
		if err != nil {
			if lsnr.stopRequest.Peek() && util.IsNetworkClosed(err) {
				// closed on stop request
			} else {
				lsnr.logger.Error("accept() error: ", err)
				abortListener.Signal()
			}
			break
		}
		connLogger := lsnr.logger.WithFields(logger.Fields{
			defs.LabelPart:   "connection",
			defs.LabelRemote: conn.RemoteAddr().String(),
		})
		connLogger.Info("accepted connection")
		lsnr.taskCounter.Add(1)
		go lsnr.runConnection(connLogger, conn)
	}
	lsnr.logger.Info("end accept loop")

	// mark the listener itself as done, note there could still be established connections
	lsnr.taskCounter.Done()
}

func (lsnr *Listener) runConnection(connLogger logger.Logger, conn *net.TCPConn) {
	defer lsnr.taskCounter.Done()
	connAborter := lsnr.launchCloser(connLogger, conn)
	remote := conn.RemoteAddr().String()
	reader := bufio.NewReaderSize(conn, defs.ListenerReadBufferSize)
	for {
		frame, err := readFrame(reader, defs.ListenerReadBufferSize)
		if err != nil {
			if util.IsNetworkClosed(err) && lsnr.stopRequest.Peek() {
				connLogger.Info("closed by stop request (delayed)")
			} else {
				if !util.IsNetworkClosed(err) {
					connLogger.Warn("read() error: ", err)
				}
				connAborter.Signal()
			}
			break
		}
		lsnr.handle(remote, frame)
	}
	connLogger.Info("ended")
}

// maxLengthDigits is the max number of digits in the length prefix of octet-counted frames
const maxLengthDigits = 9

// readFrame reads one octet-counted frame if it starts with a digit, or otherwise one newline-terminated frame
//
// Line breaks between frames are skipped. Frames longer than maxBytes are rejected with an error.
func readFrame(reader *bufio.Reader, maxBytes int) (string, error) {
	first, err := reader.Peek(1)
	for err == nil && (first[0] == '\n' || first[0] == '\r') {
		_, _ = reader.Discard(1)
		first, err = reader.Peek(1)
	}
	if err != nil {
		return "", err
	}
	if first[0] < '0' || first[0] > '9' {
		return readLineFrame(reader, maxBytes)
	}

	prefix := make([]byte, 0, maxLengthDigits)
	for {
		c, err := reader.ReadByte()
		if err != nil {
			return "", wrapUnexpectedEOF(err)
		}
		if c == ' ' {
			break
		}
		if c < '0' || c > '9' || len(prefix) == maxLengthDigits {
			return "", fmt.Errorf("invalid frame length '%s'", append(prefix, c))
		}
		prefix = append(prefix, c)
	}
	length, err := strconv.Atoi(string(prefix))
	if err != nil || length > maxBytes {
		return "", fmt.Errorf("invalid frame length '%s'", prefix)
	}
	frame := make([]byte, length)
	if _, err := io.ReadFull(reader, frame); err != nil {
		return "", wrapUnexpectedEOF(err)
	}
	return string(frame), nil
}

func readLineFrame(reader *bufio.Reader, maxBytes int) (string, error) {
	var line []byte
	for {
		fragment, err := reader.ReadSlice('\n')
		if len(line)+len(fragment) > maxBytes+len("\r\n") {
			return "", fmt.Errorf("frame exceeds %d bytes", maxBytes)
		}
		line = append(line, fragment...)
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(line) > 0:
			return strings.TrimRight(string(line), "\r"), nil
		case err != nil:
			return "", err
		}
		return strings.TrimRight(string(line), "\r\n"), nil
	}
}

func wrapUnexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
