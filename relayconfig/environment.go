package relayconfig

import (
	"os"
	"strings"

	"github.com/relex/slog-relay/defs"
)

// Environment looks up the value of a variable by its full name
type Environment func(name string) (string, bool)

// OSEnvironment reads variables from the process environment
func OSEnvironment() Environment {
	return os.LookupEnv
}

// MapEnvironment reads variables from the given map; keys are full variable names
func MapEnvironment(vars map[string]string) Environment {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// lookup returns the trimmed value of prefixed variable, or false if unset or empty
func (env Environment) lookup(suffix string) (string, string, bool) {
	name := defs.EnvPrefix + suffix
	value, ok := env(name)
	if !ok {
		return name, "", false
	}
	value = strings.TrimSpace(value)
	return name, value, value != ""
}

// ListRelayVariables lists all variables with the relay prefix from the process environment, as "NAME=value"
func ListRelayVariables() []string {
	var list []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, defs.EnvPrefix) {
			list = append(list, kv)
		}
	}
	return list
}
