package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/relex/slog-relay/defs"
	"github.com/stretchr/testify/assert"
)

func TestRootProfiles(t *testing.T) {
	dir := t.TempDir()
	state := rootCommandState{
		CPUProfile: filepath.Join(dir, "cpu.prof"),
		MemProfile: filepath.Join(dir, "mem.prof"),
		Trace:      filepath.Join(dir, "trace.out"),
		TestMode:   true,
	}
	state.preRun()
	assert.Len(t, state.profileFiles, 3)
	assert.Equal(t, 200*time.Millisecond, defs.SenderDefaultTimeout)
	state.postRun()

	for _, path := range []string{state.CPUProfile, state.MemProfile, state.Trace} {
		info, err := os.Stat(path)
		if assert.NoError(t, err, path) {
			assert.Greater(t, info.Size(), int64(0), path)
		}
	}
}

func TestRootWithoutProfiles(t *testing.T) {
	state := rootCommandState{}
	state.preRun()
	assert.Empty(t, state.profileFiles)
	state.postRun()
}
