package run

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/relex/gotils/channels"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/input/sysloglistener"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/util"
)

// Listen prints syslog messages received on the address until SIGINT / SIGTERM, or until stop is signaled if not nil
func Listen(transport relayconfig.Transport, address string, raw bool, output io.Writer, stop *channels.SignalAwaitable) error {
	runLogger := logger.WithField(defs.LabelComponent, "Launcher")
	var outputLock sync.Mutex
	printReceived := func(r sysloglistener.Received) {
		outputLock.Lock()
		defer outputLock.Unlock()
		if r.Err != nil {
			receivedUnparsableCounter.Inc()
		} else {
			receivedParsedCounter.Inc()
		}
		fmt.Fprintln(output, FormatReceived(r, raw))
	}

	if stop == nil {
		stop = channels.NewSignalAwaitable()
		sigChan := make(chan os.Signal, 10)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			s := <-sigChan
			runLogger.Infof("received %s, shutting down", s)
			stop.Signal()
		}()
	}

	lsnr, addr, err := sysloglistener.NewListener(logger.Root(), transport, address, printReceived, stop)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	runLogger.Infof("printing messages received on %s://%s", transport, addr)
	lsnr.Start()
	lsnr.Stopped().WaitForever()
	runLogger.Infof("clean exit, received=%.0f", util.SumMetricValues(receivedVec))
	return nil
}

// FormatReceived formats a received payload for display, as "remote facility.severity app[procid]: text" if parsed
func FormatReceived(r sysloglistener.Received, raw bool) string {
	if raw {
		return r.Raw
	}
	if r.Err != nil {
		return fmt.Sprintf("%s unparsable (%s): %s", r.Remote, r.Err.Error(), r.Raw)
	}
	msg := r.Message
	app := msg.AppName
	if msg.ProcID != "" {
		app += "[" + msg.ProcID + "]"
	}
	line := fmt.Sprintf("%s %s.%s %s: %s", r.Remote, msg.Facility, msg.Severity, app, msg.Text)
	if len(msg.StructuredData) > 0 {
		line += fmt.Sprintf(" %v", msg.StructuredData)
	}
	return line
}
