package relayconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/syslogprotocol"
	"github.com/relex/slog-relay/util"
	"github.com/stretchr/testify/assert"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(nil))
	assert.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 514, cfg.Port)
	assert.Equal(t, TransportUDP, cfg.Transport)
	assert.Equal(t, syslogprotocol.FacilityUser, cfg.Facility)
	assert.Equal(t, "ansible", cfg.Tag)
	assert.Equal(t, "ansible", cfg.AppName)
	assert.Equal(t, FormatRFC3164, cfg.Format)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.IncludePID)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.LevelOverrides)
	assert.Empty(t, cfg.StatLevelOverrides)
	assert.Equal(t, syslogprotocol.SeverityInfo, cfg.UnknownLevel)
	assert.Equal(t, "localhost:514", cfg.Address())
	for _, kind := range base.AllEventKinds {
		assert.True(t, cfg.AcceptsKind(kind))
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{
		"ANSIBLE_SYSLOG_HOST":               "logs.example.com",
		"ANSIBLE_SYSLOG_PORT":               " 10514 ",
		"ANSIBLE_SYSLOG_TRANSPORT":          "TCP",
		"ANSIBLE_SYSLOG_FACILITY":           "LOG_LOCAL3",
		"ANSIBLE_SYSLOG_TAG":                "deploy",
		"ANSIBLE_SYSLOG_PID":                "yes",
		"ANSIBLE_SYSLOG_FORMAT":             "rfc5424",
		"ANSIBLE_SYSLOG_DEBUG":              "TRUE",
		"ANSIBLE_SYSLOG_TIMEOUT":            "1500ms",
		"ANSIBLE_SYSLOG_MAX_SIZE":           "2KB",
		"ANSIBLE_SYSLOG_EVENTS":             "failed, unreachable,item_*",
		"ANSIBLE_SYSLOG_LEVEL_FAILED":       "crit",
		"ANSIBLE_SYSLOG_LEVEL_ITEM_OK":      "7",
		"ANSIBLE_SYSLOG_LEVEL_STAT_RESCUED": "LOG_WARNING",
		"ANSIBLE_SYSLOG_LEVEL_UNKNOWN":      "notice",
		"ANSIBLE_SYSLOG_LEVEL_OK":           "",
	}))
	assert.NoError(t, err)
	assert.Equal(t, "logs.example.com:10514", cfg.Address())
	assert.Equal(t, TransportTCP, cfg.Transport)
	assert.Equal(t, syslogprotocol.FacilityLocal3, cfg.Facility)
	assert.Equal(t, "deploy", cfg.Tag)
	assert.Equal(t, "deploy", cfg.AppName)
	assert.True(t, cfg.IncludePID)
	assert.Equal(t, FormatRFC5424, cfg.Format)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 2*datasize.KB, cfg.MaxSize)
	assert.Equal(t, map[base.EventKind]syslogprotocol.Severity{
		base.KindFailed: syslogprotocol.SeverityCrit,
		base.KindItemOk: syslogprotocol.SeverityDebug,
	}, cfg.LevelOverrides)
	assert.Equal(t, map[string]syslogprotocol.Severity{"rescued": syslogprotocol.SeverityWarning}, cfg.StatLevelOverrides)
	assert.Equal(t, syslogprotocol.SeverityNotice, cfg.UnknownLevel)

	assert.True(t, cfg.AcceptsKind(base.KindFailed))
	assert.True(t, cfg.AcceptsKind(base.KindItemSkipped))
	assert.False(t, cfg.AcceptsKind(base.KindOk))
	assert.False(t, cfg.AcceptsKind(base.KindTaskStart))
}

func TestResolveAppName(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{
		"ANSIBLE_SYSLOG_TAG":      "deploy",
		"ANSIBLE_SYSLOG_APP_NAME": "ansible-prod",
	}))
	assert.NoError(t, err)
	assert.Equal(t, "deploy", cfg.Tag)
	assert.Equal(t, "ansible-prod", cfg.AppName)
}

func TestResolveInvalidPort(t *testing.T) {
	for _, port := range []string{"0", "70000", "-1", "abc", "51.4"} {
		cfg, err := Resolve(MapEnvironment(map[string]string{"ANSIBLE_SYSLOG_PORT": port}))
		var cerr *ConfigError
		if assert.True(t, errors.As(err, &cerr), port) {
			assert.Equal(t, "ANSIBLE_SYSLOG_PORT", cerr.Variable)
			assert.Equal(t, port, cerr.Value)
		}
		assert.Equal(t, 514, cfg.Port, "falls back to default")
	}
}

func TestResolveInvalidNames(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{
		"ANSIBLE_SYSLOG_FACILITY":     "bogus",
		"ANSIBLE_SYSLOG_LEVEL_FAILED": "LOG_SCARY",
		"ANSIBLE_SYSLOG_FORMAT":       "json",
		"ANSIBLE_SYSLOG_DEBUG":        "maybe",
		"ANSIBLE_SYSLOG_TRANSPORT":    "quic",
		"ANSIBLE_SYSLOG_TIMEOUT":      "1h",
		"ANSIBLE_SYSLOG_MAX_SIZE":     "10B",
		"ANSIBLE_SYSLOG_EVENTS":       " , ",
		"ANSIBLE_SYSLOG_HOST":         "bad host",
	}))
	if assert.Error(t, err) {
		var cerr *ConfigError
		assert.True(t, errors.As(err, &cerr))
		var nameErr *syslogprotocol.UnknownNameError
		assert.True(t, errors.As(err, &nameErr))
		msg := err.Error()
		for _, name := range []string{"FACILITY", "LEVEL_FAILED", "FORMAT", "DEBUG", "TRANSPORT", "TIMEOUT", "MAX_SIZE", "EVENTS", "HOST"} {
			assert.Contains(t, msg, "ANSIBLE_SYSLOG_"+name+"=")
		}
	}
	assert.Equal(t, Defaults().Facility, cfg.Facility)
	assert.Equal(t, Defaults().Format, cfg.Format)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Empty(t, cfg.LevelOverrides)
	assert.True(t, cfg.AcceptsKind(base.KindOk))
}

func TestResolveNumericFacility(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{"ANSIBLE_SYSLOG_FACILITY": "16"}))
	assert.NoError(t, err)
	assert.Equal(t, syslogprotocol.FacilityLocal0, cfg.Facility)

	_, err = Resolve(MapEnvironment(map[string]string{"ANSIBLE_SYSLOG_FACILITY": "24"}))
	var codeErr *syslogprotocol.InvalidCodeError
	assert.True(t, errors.As(err, &codeErr))
}

func TestResolveTimeoutSeconds(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{"ANSIBLE_SYSLOG_TIMEOUT": "1"}))
	assert.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Timeout)
}

func TestConfigYaml(t *testing.T) {
	cfg, err := Resolve(MapEnvironment(map[string]string{
		"ANSIBLE_SYSLOG_LEVEL_FAILED": "crit",
		"ANSIBLE_SYSLOG_MAX_SIZE":     "2048",
	}))
	assert.NoError(t, err)
	doc, yerr := util.MarshalYaml(cfg)
	assert.NoError(t, yerr)
	assert.Contains(t, doc, "host: localhost\n")
	assert.Contains(t, doc, "facility: user\n")
	assert.Contains(t, doc, "format: RFC3164\n")
	assert.Contains(t, doc, "timeout: 2s\n")
	assert.Contains(t, doc, "maxSize: 2KB\n")
	assert.Contains(t, doc, "  failed: LOG_CRIT\n")
	assert.Contains(t, doc, "unknownLevel: LOG_INFO\n")
}

func TestListRelayVariables(t *testing.T) {
	t.Setenv("ANSIBLE_SYSLOG_TAG", "deploy")
	t.Setenv("ANSIBLE_SYSLOG_LEVEL_OK", "notice")
	t.Setenv("ANSIBLE_OTHER", "x")

	list := ListRelayVariables()
	assert.Contains(t, list, "ANSIBLE_SYSLOG_TAG=deploy")
	assert.Contains(t, list, "ANSIBLE_SYSLOG_LEVEL_OK=notice")
	assert.NotContains(t, list, "ANSIBLE_OTHER=x")

	cfg, err := Resolve(OSEnvironment())
	assert.NoError(t, err)
	assert.Equal(t, "deploy", cfg.Tag)
}
