// Package relayconfig resolves the relay configuration from ANSIBLE_SYSLOG_* environment variables
package relayconfig

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/gobwas/glob"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/syslogprotocol"
)

// Format is the syslog message layout
type Format string

// Supported formats
const (
	FormatRFC3164 Format = "RFC3164"
	FormatRFC5424 Format = "RFC5424"
)

// Transport is the network protocol to reach the syslog server
type Transport string

// Supported transports
const (
	TransportUDP Transport = "udp"
	TransportTCP Transport = "tcp"
)

// RelayConfig holds all settings of the relay
//
// RelayConfig is created once at startup by Resolve and must not be modified afterwards. It's shared by all
// components and safe for concurrent reading.
type RelayConfig struct {
	Host       string                  `yaml:"host"`
	Port       int                     `yaml:"port"`
	Transport  Transport               `yaml:"transport"`
	Facility   syslogprotocol.Facility `yaml:"facility"`
	Tag        string                  `yaml:"tag"`
	AppName    string                  `yaml:"appName"` // RFC 5424 APP-NAME, same as Tag unless set
	IncludePID bool                    `yaml:"includePID"`
	Format     Format                  `yaml:"format"`
	Debug      bool                    `yaml:"debug"`
	Timeout    time.Duration           `yaml:"timeout"`
	MaxSize    datasize.ByteSize       `yaml:"maxSize"`

	// LevelOverrides contains severities set explicitly per event kind; others fall back to built-in defaults
	LevelOverrides map[base.EventKind]syslogprotocol.Severity `yaml:"levelOverrides"`

	// StatLevelOverrides contains severities set explicitly per summary stat, e.g. "failures"
	StatLevelOverrides map[string]syslogprotocol.Severity `yaml:"statLevelOverrides"`

	// UnknownLevel is the severity for event kinds not in base.AllEventKinds
	UnknownLevel syslogprotocol.Severity `yaml:"unknownLevel"`

	// Events contains glob patterns of event kinds to relay
	Events []string `yaml:"events"`

	eventMatchers []glob.Glob
}

// Defaults returns the built-in configuration used when no variable is set
func Defaults() *RelayConfig {
	return &RelayConfig{
		Host:               "localhost",
		Port:               514,
		Transport:          TransportUDP,
		Facility:           syslogprotocol.FacilityUser,
		Tag:                "ansible",
		AppName:            "ansible",
		IncludePID:         false,
		Format:             FormatRFC3164,
		Debug:              false,
		Timeout:            defs.SenderDefaultTimeout,
		MaxSize:            datasize.ByteSize(defs.SenderDefaultMessageBytes),
		LevelOverrides:     map[base.EventKind]syslogprotocol.Severity{},
		StatLevelOverrides: map[string]syslogprotocol.Severity{},
		UnknownLevel:       syslogprotocol.SeverityInfo,
		Events:             []string{"*"},
		eventMatchers:      []glob.Glob{glob.MustCompile("*")},
	}
}

// Resolve builds RelayConfig from environment variables, with unset or empty variables taking defaults
//
// If any supplied value is invalid, Resolve returns all problems joined as ConfigError(s) together with a usable
// config in which the invalid values are replaced by defaults. The config is never nil.
func Resolve(env Environment) (*RelayConfig, error) {
	cfg := Defaults()
	r := resolver{env: env}

	if name, value, ok := env.lookup("HOST"); ok {
		if strings.ContainsAny(value, " \t") {
			r.fail(name, value, fmt.Errorf("host must not contain whitespace"))
		} else {
			cfg.Host = value
		}
	}
	r.parse("PORT", func(value string) error {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("port is not an integer")
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("port must be within 1-65535")
		}
		cfg.Port = port
		return nil
	})
	r.parse("TRANSPORT", func(value string) error {
		switch Transport(strings.ToLower(value)) {
		case TransportUDP:
			cfg.Transport = TransportUDP
		case TransportTCP:
			cfg.Transport = TransportTCP
		default:
			return fmt.Errorf("transport must be udp or tcp")
		}
		return nil
	})
	r.parse("FACILITY", func(value string) error {
		f, err := syslogprotocol.ParseFacility(value)
		if err != nil {
			return err
		}
		cfg.Facility = f
		return nil
	})
	if _, value, ok := env.lookup("TAG"); ok {
		cfg.Tag = value
		cfg.AppName = value
	}
	if _, value, ok := env.lookup("APP_NAME"); ok {
		cfg.AppName = value
	}
	r.parse("PID", func(value string) (err error) {
		cfg.IncludePID, err = parseBool(value)
		return
	})
	r.parse("FORMAT", func(value string) error {
		f, err := parseFormat(value)
		if err != nil {
			return err
		}
		cfg.Format = f
		return nil
	})
	r.parse("DEBUG", func(value string) (err error) {
		cfg.Debug, err = parseBool(value)
		return
	})
	r.parse("TIMEOUT", func(value string) error {
		d, err := parseTimeout(value)
		if err != nil {
			return err
		}
		cfg.Timeout = d
		return nil
	})
	r.parse("MAX_SIZE", func(value string) error {
		var size datasize.ByteSize
		if err := size.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid size: %w", err)
		}
		if size.Bytes() < uint64(defs.SenderMinMessageBytes) {
			return fmt.Errorf("size must be at least %dB", defs.SenderMinMessageBytes)
		}
		cfg.MaxSize = size
		return nil
	})
	r.parse("EVENTS", func(value string) error {
		patterns, matchers, err := parseEventPatterns(value)
		if err != nil {
			return err
		}
		cfg.Events = patterns
		cfg.eventMatchers = matchers
		return nil
	})

	for _, kind := range base.AllEventKinds {
		kind := kind
		r.parse("LEVEL_"+kind.EnvSuffix(), func(value string) error {
			s, err := syslogprotocol.ParseSeverity(value)
			if err != nil {
				return err
			}
			cfg.LevelOverrides[kind] = s
			return nil
		})
	}
	for _, stat := range base.SummaryStats {
		stat := stat
		r.parse("LEVEL_STAT_"+strings.ToUpper(stat), func(value string) error {
			s, err := syslogprotocol.ParseSeverity(value)
			if err != nil {
				return err
			}
			cfg.StatLevelOverrides[stat] = s
			return nil
		})
	}
	r.parse("LEVEL_UNKNOWN", func(value string) error {
		s, err := syslogprotocol.ParseSeverity(value)
		if err != nil {
			return err
		}
		cfg.UnknownLevel = s
		return nil
	})

	return cfg, r.err()
}

// Address returns the host:port of syslog server
func (cfg *RelayConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// AcceptsKind checks whether events of the given kind should be relayed according to the Events patterns
func (cfg *RelayConfig) AcceptsKind(kind base.EventKind) bool {
	for _, m := range cfg.eventMatchers {
		if m.Match(string(kind)) {
			return true
		}
	}
	return false
}

type resolver struct {
	env    Environment
	errors []error
}

func (r *resolver) parse(suffix string, apply func(value string) error) {
	name, value, ok := r.env.lookup(suffix)
	if !ok {
		return
	}
	if err := apply(value); err != nil {
		r.fail(name, value, err)
	}
}

func (r *resolver) fail(name string, value string, cause error) {
	r.errors = append(r.errors, &ConfigError{Variable: name, Value: value, Cause: cause})
}

func (r *resolver) err() error {
	return errors.Join(r.errors...)
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean")
	}
}

func parseFormat(value string) (Format, error) {
	switch strings.ToUpper(value) {
	case "RFC3164", "3164":
		return FormatRFC3164, nil
	case "RFC5424", "5424":
		return FormatRFC5424, nil
	default:
		return "", fmt.Errorf("format must be RFC3164 or RFC5424")
	}
}

// parseTimeout accepts Go durations ("1500ms") or plain seconds ("2")
func parseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		sec, serr := strconv.ParseFloat(value, 64)
		if serr != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		d = time.Duration(sec * float64(time.Second))
	}
	if d <= 0 || d > defs.SenderMaxTimeout {
		return 0, fmt.Errorf("timeout must be above 0 and at most %s", defs.SenderMaxTimeout)
	}
	return d, nil
}

func parseEventPatterns(value string) ([]string, []glob.Glob, error) {
	var patterns []string
	var matchers []glob.Glob
	for _, p := range strings.Split(value, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pattern '%s': %w", p, err)
		}
		patterns = append(patterns, p)
		matchers = append(matchers, g)
	}
	if len(patterns) == 0 {
		return nil, nil, fmt.Errorf("no pattern")
	}
	return patterns, matchers, nil
}
