package relayconfig

import (
	"fmt"
)

// ConfigError tells a supplied environment variable cannot be parsed or is out of range
type ConfigError struct {
	Variable string
	Value    string
	Cause    error
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("%s='%s': %s", err.Variable, err.Value, err.Cause.Error())
}

func (err *ConfigError) Unwrap() error {
	return err.Cause
}
