package cmd

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-relay/defs"
)

// rootCommandState holds the flags shared by all commands
type rootCommandState struct {
	CPUProfile string `name:"cpuprofile" help:"Write CPU profile of the command to file."`
	MemProfile string `name:"memprofile" help:"Write memory profile to file at the end of the command."`
	Trace      string `help:"Write execution trace of the command to file."`
	TestMode   bool   `help:"Use test mode config: short send timeout"`

	profileFiles map[string]*os.File
}

var rootCmd rootCommandState

func (cmd *rootCommandState) preRun() {
	if cmd.TestMode {
		defs.EnableTestMode()
	}
	cmd.profileFiles = make(map[string]*os.File, 3)

	if f := cmd.createProfile("CPU profile", cmd.CPUProfile); f != nil {
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatalf("failed to start CPU profiling: %s", err.Error())
		}
	}
	cmd.createProfile("memory profile", cmd.MemProfile)
	if f := cmd.createProfile("trace", cmd.Trace); f != nil {
		if err := trace.Start(f); err != nil {
			logger.Fatalf("failed to start tracing: %s", err.Error())
		}
	}
}

func (cmd *rootCommandState) postRun() {
	if f, ok := cmd.profileFiles["CPU profile"]; ok {
		pprof.StopCPUProfile()
		f.Close()
	}
	if f, ok := cmd.profileFiles["memory profile"]; ok {
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Errorf("failed to write memory profile: %s", err.Error())
		}
		f.Close()
	}
	if f, ok := cmd.profileFiles["trace"]; ok {
		trace.Stop()
		f.Close()
	}
}

// createProfile creates the output file of a profile if path is set, or returns nil
func (cmd *rootCommandState) createProfile(kind string, path string) *os.File {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Fatalf("failed to create %s %s: %s", kind, path, err.Error())
	}
	logger.Infof("start writing %s to %s", kind, path)
	cmd.profileFiles[kind] = f
	return f
}
