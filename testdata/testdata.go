// Package testdata provides access to shared sample event streams for testing
package testdata

import (
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
)

var inputExtPattern = regexp.MustCompile(`-input\.(jsonl|msgpack)$`)

var absoluteDirPath string

func init() {
	_, thisFile, _, _ := runtime.Caller(0)
	absoluteDirPath = filepath.Dir(thisFile)
}

// ListInputFiles lists sample event streams matching the pattern, e.g. "*" for all
func ListInputFiles(t *testing.T, pattern string) []string {
	fullPattern := filepath.Join(absoluteDirPath, "events", pattern+"-input.jsonl")

	inFiles, globErr := filepath.Glob(fullPattern)
	if globErr != nil {
		t.Fatalf("failed to scan test files at path %s: %v", fullPattern, globErr)
	}
	if len(inFiles) == 0 {
		t.Fatalf("failed to find test files at path %s: no match", fullPattern)
	}
	return inFiles
}

// GetInputTitle returns the title of sample stream, e.g. "deploy" for "deploy-input.jsonl"
func GetInputTitle(t *testing.T, fn string) string {
	title := inputExtPattern.ReplaceAllString(fn, "")
	if title == fn {
		t.Fatalf("invalid input filename %s", fn)
	}
	return filepath.Base(title)
}

// GetOutputFilename returns the path of expected syslog payloads for the sample stream, one per line
func GetOutputFilename(t *testing.T, fn string) string {
	outFn := inputExtPattern.ReplaceAllString(fn, "-output.log")
	if outFn == fn {
		t.Fatalf("invalid input filename %s", fn)
	}
	return outFn
}
