package adapter

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-relay/output/formatter"
	"github.com/relex/slog-relay/relay"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/testdata"
	"github.com/relex/slog-relay/util"
	"github.com/stretchr/testify/assert"
)

type payloadCollector struct {
	mutex    sync.Mutex
	payloads []string
}

func (c *payloadCollector) Send(payload string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.payloads = append(c.payloads, payload)
}

func (c *payloadCollector) Close() {}

func TestSampleStreams(t *testing.T) {
	cfg, err := relayconfig.Resolve(relayconfig.MapEnvironment(map[string]string{
		"ANSIBLE_SYSLOG_FORMAT":   "RFC5424",
		"ANSIBLE_SYSLOG_FACILITY": "local0",
	}))
	if !assert.NoError(t, err) {
		return
	}
	fixedTime := time.Date(2025, time.October, 4, 9, 5, 7, 0, time.UTC)

	for _, inputPath := range testdata.ListInputFiles(t, "*") {
		title := testdata.GetInputTitle(t, inputPath)
		t.Run(title, func(tt *testing.T) {
			input, oerr := os.Open(inputPath)
			if !assert.NoError(tt, oerr) {
				return
			}
			defer input.Close()

			collector := &payloadCollector{}
			rootLogger := logger.WithField("test", tt.Name())
			r := relay.New(rootLogger, cfg, formatter.New(cfg, "ctl01", 100), collector, promreg.NewMetricFactory("stream_"+title+"_", nil, nil)).
				WithClock(func() time.Time { return fixedTime })
			assert.NoError(tt, NewDecoder(rootLogger, input, StreamJSON, New(rootLogger, r)).Run())

			actual := strings.Join(collector.payloads, "\n") + "\n"
			outputPath := testdata.GetOutputFilename(tt, inputPath)
			if util.IsTestGenerationMode() {
				assert.NoError(tt, os.WriteFile(outputPath, []byte(actual), 0644))
				return
			}
			expected, rerr := os.ReadFile(outputPath)
			if assert.NoError(tt, rerr) {
				assert.Equal(tt, string(expected), actual)
			}
		})
	}
}
