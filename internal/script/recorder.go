package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Recorder collects the steps of an interactive session so they can be
// replayed later as a script.
//
// Consecutive text steps are joined and consecutive repeatable moves are
// folded into a single counted step.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a step.
func (r *Recorder) Record(step Step) {
	if step.Count < 1 {
		step.Count = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.steps); n > 0 {
		last := &r.steps[n-1]
		switch {
		case step.Op == OpText && last.Op == OpText:
			last.Arg += step.Arg
			return
		case step.repeatable() && last.Op == step.Op:
			last.Count += step.Count
			return
		}
	}
	r.steps = append(r.steps, step)
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// Reset discards all recorded steps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.steps = nil
	r.mu.Unlock()
}

// Script returns a copy of the recording as a script.
func (r *Recorder) Script(name string) *Script {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return &Script{Name: name, Steps: steps}
}

// Save writes the recording to path as a YAML script.
// The file is written atomically using a temporary file and rename.
func (r *Recorder) Save(path, name string) error {
	data, err := yaml.Marshal(r.Script(name))
	if err != nil {
		return fmt.Errorf("failed to marshal script: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
