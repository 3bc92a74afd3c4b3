// Package syslogparser parses RFC 3164 and RFC 5424 payloads back into their parts
//
// It's used to inspect relayed messages in the diagnostic listener and tests. Timestamps are not parsed.
package syslogparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relex/slog-relay/syslogprotocol"
)

const rfc3164TimestampLength = len("Jan _2 15:04:05")

// Message contains the parts of a parsed syslog message
type Message struct {
	Priority       syslogprotocol.Priority
	Facility       syslogprotocol.Facility
	Severity       syslogprotocol.Severity
	Version        int    // 1 for RFC 5424, 0 for RFC 3164
	Timestamp      string // as it is
	Hostname       string
	AppName        string // TAG in RFC 3164
	ProcID         string
	MsgID          string
	StructuredData map[string]map[string]string // SD-ID => param name => unescaped value
	Text           string
}

// Parse parses a syslog payload in either format, detected by the version after PRI
//
// Nil values ("-") of RFC 5424 are returned as empty strings
func Parse(payload string) (*Message, error) {
	if len(payload) < 3 || payload[0] != '<' {
		return nil, fmt.Errorf("invalid syslog: missing pri")
	}
	end := strings.IndexByte(payload, '>')
	if end < 2 || end > 4 {
		return nil, fmt.Errorf("invalid syslog pri '%s'", truncate(payload, 5))
	}
	priVal, err := strconv.Atoi(payload[1:end])
	if err != nil {
		return nil, fmt.Errorf("invalid syslog pri value '%s'", payload[1:end])
	}
	pri := syslogprotocol.Priority(priVal)
	if !pri.IsValid() {
		return nil, fmt.Errorf("invalid syslog pri value %d", priVal)
	}
	msg := &Message{Priority: pri}
	msg.Facility, msg.Severity = pri.Decode()

	remaining := payload[end+1:]
	if strings.HasPrefix(remaining, "1 ") {
		msg.Version = 1
		if err := parseRFC5424(msg, remaining[2:]); err != nil {
			return nil, err
		}
		return msg, nil
	}
	if err := parseRFC3164(msg, remaining); err != nil {
		return nil, err
	}
	return msg, nil
}

func parseRFC3164(msg *Message, remaining string) error {
	if len(remaining) < rfc3164TimestampLength+1 || remaining[rfc3164TimestampLength] != ' ' {
		return fmt.Errorf("invalid RFC 3164 timestamp '%s'", truncate(remaining, rfc3164TimestampLength))
	}
	msg.Timestamp = remaining[:rfc3164TimestampLength]
	remaining = remaining[rfc3164TimestampLength+1:]

	ok, host, next := nextFieldBySpace(remaining)
	if !ok {
		return fmt.Errorf("missing RFC 3164 hostname")
	}
	msg.Hostname = host
	remaining = next

	sep := strings.Index(remaining, ": ")
	if sep == -1 {
		if strings.HasSuffix(remaining, ":") {
			sep = len(remaining) - 1
		} else {
			msg.Text = remaining
			return nil
		}
	}
	tag := remaining[:sep]
	if sep+2 <= len(remaining) {
		msg.Text = remaining[sep+2:]
	}
	if open := strings.IndexByte(tag, '['); open != -1 && strings.HasSuffix(tag, "]") {
		msg.ProcID = tag[open+1 : len(tag)-1]
		tag = tag[:open]
	}
	msg.AppName = tag
	return nil
}

func parseRFC5424(msg *Message, remaining string) error {
	headers := []*string{&msg.Timestamp, &msg.Hostname, &msg.AppName, &msg.ProcID, &msg.MsgID}
	names := []string{"timestamp", "hostname", "app-name", "procid", "msgid"}
	for i, field := range headers {
		ok, val, next := nextFieldBySpace(remaining)
		if !ok {
			return fmt.Errorf("missing syslog field '%s'", names[i])
		}
		if val != "-" {
			*field = val
		}
		remaining = next
	}

	sd, rest, err := parseStructuredData(remaining)
	if err != nil {
		return err
	}
	msg.StructuredData = sd
	switch {
	case rest == "":
	case rest[0] == ' ':
		msg.Text = strings.TrimPrefix(rest[1:], "\xEF\xBB\xBF")
	default:
		return fmt.Errorf("unexpected '%s' after structured data", truncate(rest, 10))
	}
	return nil
}

// parseStructuredData parses "-" or one or more SD-ELEMENTs, returning the rest after them
func parseStructuredData(s string) (map[string]map[string]string, string, error) {
	if strings.HasPrefix(s, "-") {
		return nil, s[1:], nil
	}
	if !strings.HasPrefix(s, "[") {
		return nil, "", fmt.Errorf("missing structured data")
	}
	result := make(map[string]map[string]string, 1)
	for strings.HasPrefix(s, "[") {
		s = s[1:]
		idEnd := strings.IndexAny(s, " ]")
		if idEnd <= 0 {
			return nil, "", fmt.Errorf("invalid SD-ID")
		}
		params := make(map[string]string, 4)
		result[s[:idEnd]] = params
		s = s[idEnd:]
		for strings.HasPrefix(s, " ") {
			s = s[1:]
			eq := strings.Index(s, `="`)
			if eq <= 0 {
				return nil, "", fmt.Errorf("invalid SD-PARAM")
			}
			name := s[:eq]
			value, next, ok := readParamValue(s[eq+2:])
			if !ok {
				return nil, "", fmt.Errorf("unterminated value of SD-PARAM '%s'", name)
			}
			params[name] = value
			s = next
		}
		if !strings.HasPrefix(s, "]") {
			return nil, "", fmt.Errorf("unterminated SD-ELEMENT")
		}
		s = s[1:]
	}
	return result, s, nil
}

// readParamValue reads an escaped PARAM-VALUE up to the closing quote
func readParamValue(s string) (string, string, bool) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\' || s[i+1] == ']'):
			sb.WriteByte(s[i+1])
			i++
		case c == '"':
			return sb.String(), s[i+1:], true
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", false
}

// nextFieldBySpace takes next field value separated by space
// return (ok, value, remaining part not including space)
// Ex: "a b c" will return (true, "a", "b c")
func nextFieldBySpace(s string) (bool, string, string) {
	end := strings.IndexByte(s, ' ')
	if end == -1 {
		return false, "", ""
	}
	return true, s[:end], s[end+1:]
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
