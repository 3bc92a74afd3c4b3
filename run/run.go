// Package run runs the relay commands until the input ends or a stop signal arrives
package run

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/input/adapter"
	"github.com/relex/slog-relay/relay"
	"github.com/relex/slog-relay/relayconfig"
)

// RunStream relays host events read from input until the end of stream or SIGINT / SIGTERM
func RunStream(input io.Reader, format adapter.StreamFormat, env relayconfig.Environment, metricCreator promreg.MetricCreator) error {
	runLogger := logger.WithField(defs.LabelComponent, "Launcher")
	cfg, _ := LoadConfig(env)

	r := relay.Start(logger.Root(), cfg, metricCreator)
	defer r.Close()
	decoder := adapter.NewDecoder(logger.Root(), input, format, adapter.New(logger.Root(), r))

	finished := make(chan error, 1)
	go func() {
		finished <- decoder.Run()
	}()

	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case s := <-sigChan:
		// the decoder may be blocked on reading and is abandoned
		runLogger.Infof("received %s, shutting down", s)
		return nil
	case err := <-finished:
		if err != nil {
			streamFailureCounter.Inc()
			runLogger.Errorf("event stream failed: %s", err.Error())
			return err
		}
		streamSuccessCounter.Inc()
		runLogger.Info("clean exit")
		return nil
	}
}

// SendOne relays a single event, e.g. from shell hooks
func SendOne(kind base.EventKind, text string, env relayconfig.Environment, metricCreator promreg.MetricCreator, keyValues ...string) {
	cfg, _ := LoadConfig(env)
	r := relay.Start(logger.Root(), cfg, metricCreator)
	defer r.Close()
	r.Emit(base.NewEvent(kind, text, keyValues...))
}
