package run

import (
	"errors"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/classifier"
	"github.com/relex/slog-relay/relayconfig"
	"github.com/relex/slog-relay/syslogprotocol"
	"github.com/relex/slog-relay/util"
)

// ConfigDump is the output of config command: the resolved config with effective severities
type ConfigDump struct {
	Variables  []string                                   `yaml:"variables"`
	Config     *relayconfig.RelayConfig                   `yaml:"config"`
	Levels     map[base.EventKind]syslogprotocol.Severity `yaml:"levels"`
	StatLevels map[string]syslogprotocol.Severity         `yaml:"statLevels"`
}

// LoadConfig resolves config from the environment, logging any invalid variable which is replaced by default value
//
// The returned config is always usable; the error is returned for callers which need to fail on it
func LoadConfig(env relayconfig.Environment) (*relayconfig.RelayConfig, error) {
	cfg, err := relayconfig.Resolve(env)
	if err != nil {
		for _, cerr := range unwrapJoined(err) {
			logger.Errorf("invalid config, using default: %s", cerr.Error())
		}
	}
	return cfg, err
}

// DumpConfig renders the config and effective severities as YAML
func DumpConfig(cfg *relayconfig.RelayConfig, variables []string) (string, error) {
	c := classifier.New(logger.Root(), cfg)
	return util.MarshalYaml(&ConfigDump{
		Variables:  variables,
		Config:     cfg,
		Levels:     c.Levels(),
		StatLevels: c.StatLevels(),
	})
}

func unwrapJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
