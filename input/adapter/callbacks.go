// Package adapter translates callbacks of the automation runner into relay events
package adapter

// Result is the outcome of a task on one host, or of one loop item in a task
type Result struct {
	Host       string
	Task       string // falls back to the current task if empty
	Item       string // only for item results
	Msg        string
	Retries    int // remaining retries, only for retry results
	SkipReason string
}

// Stats contains final counters of a playbook run, as host => stat name => count
type Stats struct {
	Hosts map[string]map[string]int
}

// Callbacks has one method per event shape of the automation runner
type Callbacks interface {
	PlaybookOnStart(path string)
	PlayOnStart(name string)
	TaskOnStart(name string)

	RunnerOnOk(result Result)
	RunnerOnChanged(result Result)
	RunnerOnFailed(result Result)
	RunnerOnUnreachable(result Result)
	RunnerOnSkipped(result Result)
	RunnerOnRetry(result Result)

	RunnerItemOnOk(result Result)
	RunnerItemOnFailed(result Result)
	RunnerItemOnSkipped(result Result)

	PlaybookOnStats(stats Stats)

	// RunnerOnOther handles event kinds introduced by newer runners
	RunnerOnOther(event string, result Result)
}
