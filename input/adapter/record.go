package adapter

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/relex/slog-relay/base"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one host event in the event stream, either a JSON line or a msgpack map
type Record struct {
	Event      string                    `json:"event" msgpack:"event"`
	Host       string                    `json:"host,omitempty" msgpack:"host,omitempty"`
	Task       string                    `json:"task,omitempty" msgpack:"task,omitempty"`
	Play       string                    `json:"play,omitempty" msgpack:"play,omitempty"`
	Playbook   string                    `json:"playbook,omitempty" msgpack:"playbook,omitempty"`
	Item       interface{}               `json:"item,omitempty" msgpack:"item,omitempty"`
	Msg        interface{}               `json:"msg,omitempty" msgpack:"msg,omitempty"`
	Retries    int                       `json:"retries,omitempty" msgpack:"retries,omitempty"`
	SkipReason string                    `json:"skip_reason,omitempty" msgpack:"skip_reason,omitempty"`
	Stats      map[string]map[string]int `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

// eventStats is the event name of final stats, in addition to the event kinds of results
const eventStats = "stats"

// Dispatch calls the callback matching the event name of record
func (rec *Record) Dispatch(callbacks Callbacks) error {
	if rec.Event == "" {
		return fmt.Errorf("missing event name")
	}
	name := base.ParseEventKind(rec.Event)
	switch name {
	case base.KindPlaybookStart:
		callbacks.PlaybookOnStart(rec.Playbook)
	case base.KindPlayStart:
		callbacks.PlayOnStart(rec.Play)
	case base.KindTaskStart:
		callbacks.TaskOnStart(rec.Task)
	case base.KindOk:
		callbacks.RunnerOnOk(rec.result())
	case base.KindChanged:
		callbacks.RunnerOnChanged(rec.result())
	case base.KindFailed:
		callbacks.RunnerOnFailed(rec.result())
	case base.KindUnreachable:
		callbacks.RunnerOnUnreachable(rec.result())
	case base.KindSkipped:
		callbacks.RunnerOnSkipped(rec.result())
	case base.KindRetry:
		callbacks.RunnerOnRetry(rec.result())
	case base.KindItemOk:
		callbacks.RunnerItemOnOk(rec.result())
	case base.KindItemFailed:
		callbacks.RunnerItemOnFailed(rec.result())
	case base.KindItemSkipped:
		callbacks.RunnerItemOnSkipped(rec.result())
	case eventStats:
		callbacks.PlaybookOnStats(Stats{Hosts: rec.Stats})
	case base.KindSummaryStart, base.KindSummaryHost, base.KindSummaryComplete:
		return fmt.Errorf("event '%s' is generated from stats and cannot be sent directly", rec.Event)
	default:
		callbacks.RunnerOnOther(string(name), rec.result())
	}
	return nil
}

func (rec *Record) result() Result {
	return Result{
		Host:       rec.Host,
		Task:       rec.Task,
		Item:       stringify(rec.Item),
		Msg:        stringify(rec.Msg),
		Retries:    rec.Retries,
		SkipReason: rec.SkipReason,
	}
}

// stringify converts free-form values like loop items into text, with non-string values in JSON
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		s, err := json.MarshalToString(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return s
	}
}
