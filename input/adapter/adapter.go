package adapter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/base"
	"github.com/relex/slog-relay/defs"
	"github.com/relex/slog-relay/syslogprotocol"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// KindAlert is the kind of internal error reports, which are always sent at LOG_ALERT regardless of filters
const KindAlert base.EventKind = "alert"

// Adapter implements Callbacks by emitting normalized events
//
// Adapter remembers the current playbook, play and task to fill metadata of results and summary lines. Panics
// raised while handling a callback are recovered and reported at LOG_ALERT, so the automation run is never aborted.
type Adapter struct {
	logger   logger.Logger
	emitter  base.EventEmitter
	mutex    sync.Mutex
	playbook string
	play     string
	task     string
}

// New creates an Adapter emitting to the given emitter, normally a relay.Relay
func New(parentLogger logger.Logger, emitter base.EventEmitter) *Adapter {
	return &Adapter{
		logger:  parentLogger.WithField(defs.LabelComponent, "Adapter"),
		emitter: emitter,
	}
}

// PlaybookOnStart records the playbook name as the base name of its path
func (a *Adapter) PlaybookOnStart(path string) {
	defer a.recoverPanic("playbook_start")
	name := filepath.Base(path)
	if path == "" {
		name = ""
	}
	a.mutex.Lock()
	a.playbook = name
	a.play = ""
	a.task = ""
	a.mutex.Unlock()
	a.emitter.Emit(base.NewEvent(base.KindPlaybookStart, "PLAYBOOK ["+name+"]", base.MetaPlaybook, name))
}

// PlayOnStart records the current play
func (a *Adapter) PlayOnStart(name string) {
	defer a.recoverPanic("play_start")
	a.mutex.Lock()
	a.play = name
	a.task = ""
	playbook := a.playbook
	a.mutex.Unlock()
	a.emitter.Emit(base.NewEvent(base.KindPlayStart, "PLAY ["+name+"]", base.MetaPlay, name, base.MetaPlaybook, playbook))
}

// TaskOnStart records the current task
func (a *Adapter) TaskOnStart(name string) {
	defer a.recoverPanic("task_start")
	a.mutex.Lock()
	a.task = name
	playbook, play := a.playbook, a.play
	a.mutex.Unlock()
	a.emitter.Emit(base.NewEvent(base.KindTaskStart, "TASK ["+name+"]", base.MetaTask, name, base.MetaPlay, play, base.MetaPlaybook, playbook))
}

func (a *Adapter) RunnerOnOk(result Result)          { a.emitResult(base.KindOk, result) }
func (a *Adapter) RunnerOnChanged(result Result)     { a.emitResult(base.KindChanged, result) }
func (a *Adapter) RunnerOnFailed(result Result)      { a.emitResult(base.KindFailed, result) }
func (a *Adapter) RunnerOnUnreachable(result Result) { a.emitResult(base.KindUnreachable, result) }
func (a *Adapter) RunnerOnSkipped(result Result)     { a.emitResult(base.KindSkipped, result) }
func (a *Adapter) RunnerOnRetry(result Result)       { a.emitResult(base.KindRetry, result) }
func (a *Adapter) RunnerItemOnOk(result Result)      { a.emitResult(base.KindItemOk, result) }
func (a *Adapter) RunnerItemOnFailed(result Result)  { a.emitResult(base.KindItemFailed, result) }
func (a *Adapter) RunnerItemOnSkipped(result Result) { a.emitResult(base.KindItemSkipped, result) }

// RunnerOnOther emits a result of unrecognized kind, classified by the unknown level
func (a *Adapter) RunnerOnOther(event string, result Result) {
	a.emitResult(base.ParseEventKind(event), result)
}

// PlaybookOnStats emits summary_start, a summary_host line "<playbook> <host> <count> <stat>" for each non-zero stat
// of each host in alphabetical order, and summary_complete at the end
func (a *Adapter) PlaybookOnStats(stats Stats) {
	defer a.recoverPanic("summary")
	a.mutex.Lock()
	playbook := a.playbook
	a.mutex.Unlock()

	a.emitter.Emit(base.NewEvent(base.KindSummaryStart, "PLAY RECAP ["+playbook+"]", base.MetaPlaybook, playbook))
	hosts := maps.Keys(stats.Hosts)
	slices.Sort(hosts)
	for _, host := range hosts {
		counts := stats.Hosts[host]
		for _, stat := range orderStats(counts) {
			count := counts[stat]
			if count == 0 {
				continue
			}
			countStr := strconv.Itoa(count)
			a.emitter.Emit(base.NewEvent(base.KindSummaryHost, strings.Join([]string{playbook, host, countStr, stat}, " "),
				base.MetaPlaybook, playbook, base.MetaHost, host, base.MetaStat, stat, base.MetaCount, countStr))
		}
	}
	a.emitter.Emit(base.NewEvent(base.KindSummaryComplete, "PLAY RECAP ["+playbook+"] complete", base.MetaPlaybook, playbook))
}

// Alert reports an internal problem such as a malformed record at LOG_ALERT
func (a *Adapter) Alert(text string) {
	a.emitter.EmitAt(base.NewEvent(KindAlert, text, base.MetaMsgID, "ALERT"), syslogprotocol.SeverityAlert)
}

func (a *Adapter) emitResult(kind base.EventKind, result Result) {
	defer a.recoverPanic(string(kind))
	a.mutex.Lock()
	playbook, play, task := a.playbook, a.play, a.task
	a.mutex.Unlock()
	if result.Task != "" {
		task = result.Task
	}

	msg := result.Msg
	if msg == "" && result.SkipReason != "" {
		msg = result.SkipReason
	}
	retries := ""
	if kind == base.KindRetry {
		retries = strconv.Itoa(result.Retries)
		if msg == "" {
			msg = fmt.Sprintf("retrying (%d retries left)", result.Retries)
		}
	}

	parts := make([]string, 0, 3)
	parts = append(parts, result.Host)
	if result.Item != "" {
		parts = append(parts, task+" (item="+result.Item+")")
	} else {
		parts = append(parts, task)
	}
	if msg != "" {
		parts = append(parts, msg)
	}

	a.emitter.Emit(base.NewEvent(kind, strings.Join(parts, " | "),
		base.MetaHost, result.Host,
		base.MetaTask, task,
		base.MetaPlay, play,
		base.MetaPlaybook, playbook,
		base.MetaItem, result.Item,
		base.MetaMsg, result.Msg,
		base.MetaRetries, retries,
		base.MetaSkipReason, result.SkipReason,
	))
}

// recoverPanic reports a panic as two LOG_ALERT messages: the type of the panic value and the value itself
func (a *Adapter) recoverPanic(callback string) {
	r := recover()
	if r == nil {
		return
	}
	a.logger.Errorf("panic in %s callback: %v", callback, r)
	// the emitter itself may be the source of panic
	defer func() {
		if r2 := recover(); r2 != nil {
			a.logger.Errorf("failed to report panic: %v", r2)
		}
	}()
	a.Alert(fmt.Sprintf("%T", r))
	a.Alert(fmt.Sprint(r))
}

// orderStats returns stats in the order of base.SummaryStats followed by unrecognized ones alphabetically
func orderStats(counts map[string]int) []string {
	ordered := make([]string, 0, len(counts))
	for _, stat := range base.SummaryStats {
		if _, ok := counts[stat]; ok {
			ordered = append(ordered, stat)
		}
	}
	var extra []string
	for stat := range counts {
		if !slices.Contains(base.SummaryStats, stat) {
			extra = append(extra, stat)
		}
	}
	slices.Sort(extra)
	return append(ordered, extra...)
}
