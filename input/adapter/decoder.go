package adapter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
	"github.com/vmihailenco/msgpack/v4"
)

// StreamFormat is the encoding of event stream
type StreamFormat string

// Supported stream formats
const (
	StreamJSON    StreamFormat = "json"    // one JSON object per line
	StreamMsgpack StreamFormat = "msgpack" // concatenated msgpack maps
)

// ParseStreamFormat parses a stream format name
func ParseStreamFormat(name string) (StreamFormat, error) {
	switch StreamFormat(strings.ToLower(name)) {
	case StreamJSON, "jsonl", "ndjson":
		return StreamJSON, nil
	case StreamMsgpack:
		return StreamMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported stream format '%s'", name)
	}
}

// Target receives decoded records and reports of malformed records
type Target interface {
	Callbacks
	Alert(text string)
}

// Decoder reads host events from a stream and dispatches them
//
// Malformed records are reported through Target.Alert and skipped
type Decoder struct {
	logger  logger.Logger
	format  StreamFormat
	input   io.Reader
	target  Target
	records int
	skipped int
}

// NewDecoder creates a Decoder for the given stream
func NewDecoder(parentLogger logger.Logger, input io.Reader, format StreamFormat, target Target) *Decoder {
	return &Decoder{
		logger: parentLogger.WithFields(logger.Fields{defs.LabelComponent: "Decoder", defs.LabelName: string(format)}),
		format: format,
		input:  input,
		target: target,
	}
}

// Run reads and dispatches records until the end of stream
//
// Only read errors of the underlying stream or unrecoverable corruption of msgpack stream are returned
func (dec *Decoder) Run() error {
	var err error
	switch dec.format {
	case StreamMsgpack:
		err = dec.runMsgpack()
	default:
		err = dec.runJSON()
	}
	dec.logger.Infof("finished: records=%d skipped=%d", dec.records, dec.skipped)
	return err
}

// Records returns the numbers of dispatched and skipped records
func (dec *Decoder) Records() (int, int) {
	return dec.records, dec.skipped
}

func (dec *Decoder) runJSON() error {
	reader := bufio.NewReaderSize(dec.input, 64*1024)
	for lineNum := 1; ; lineNum++ {
		line, tooLong, err := readLine(reader, defs.DecoderMaxLineBytes)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read line %d: %w", lineNum, err)
		}
		switch {
		case tooLong:
			dec.skip(fmt.Sprintf("record at line %d exceeds %d bytes", lineNum, defs.DecoderMaxLineBytes))
		case len(bytes.TrimSpace(line)) == 0:
			continue
		default:
			rec := Record{}
			if jerr := json.Unmarshal(line, &rec); jerr != nil {
				dec.skip(fmt.Sprintf("malformed record at line %d: %s", lineNum, jerr.Error()))
			} else {
				dec.dispatch(&rec, lineNum)
			}
		}
	}
}

func (dec *Decoder) runMsgpack() error {
	reader := msgpack.NewDecoder(bufio.NewReader(dec.input))
	for index := 1; ; index++ {
		value, err := reader.DecodeInterface()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			dec.skip(fmt.Sprintf("corrupted stream at record %d: %s", index, err.Error()))
			return fmt.Errorf("failed to read record %d: %w", index, err)
		}
		// the value is complete here, so a mismatch with Record only affects this record
		raw, merr := msgpack.Marshal(value)
		if merr != nil {
			dec.skip(fmt.Sprintf("malformed record %d: %s", index, merr.Error()))
			continue
		}
		rec := Record{}
		if uerr := msgpack.Unmarshal(raw, &rec); uerr != nil {
			dec.skip(fmt.Sprintf("malformed record %d: %s", index, uerr.Error()))
			continue
		}
		dec.dispatch(&rec, index)
	}
}

func (dec *Decoder) dispatch(rec *Record, index int) {
	if err := rec.Dispatch(dec.target); err != nil {
		dec.skip(fmt.Sprintf("invalid record %d: %s", index, err.Error()))
		return
	}
	dec.records++
}

func (dec *Decoder) skip(reason string) {
	dec.skipped++
	dec.logger.Warn(reason)
	dec.target.Alert(reason)
}

// readLine reads one line without the line break, discarding the content beyond maxBytes
//
// The returned error is io.EOF at the end of stream, after the last line has been returned
func readLine(reader *bufio.Reader, maxBytes int) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		fragment, isPrefix, err := reader.ReadLine()
		if err != nil {
			return line, tooLong, err
		}
		if !tooLong {
			if len(line)+len(fragment) > maxBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, fragment...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}
