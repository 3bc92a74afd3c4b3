package sender

import (
	"fmt"
)

// TransportError is a failure to reach or write to the syslog server
type TransportError struct {
	Op        string // "dial" or "write"
	Transport string
	Address   string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s://%s: %s", e.Op, e.Transport, e.Address, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
