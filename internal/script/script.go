package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dshills/mathstorm/internal/engine/history"
	"github.com/dshills/mathstorm/internal/input/palette"
)

// Errors returned when decoding or running scripts.
var (
	ErrUnknownOp  = errors.New("unknown script op")
	ErrInvalidArg = errors.New("invalid script argument")
)

// Target is the editing surface a script drives. *engine.Engine satisfies it.
type Target interface {
	InsertText(s string) error
	InsertSymbol(id string) error
	DeleteBackward() bool
	SeekLeft() bool
	SeekRight() bool
	SeekStart() int
	SeekEnd() int
	Clear()
	Commit() (*history.Entry, error)
	Markup() string
	CaretMarkup() string
	Depth() int
	IsEmpty() bool
	Palette() *palette.Palette
}

// Op is a script step operation.
type Op string

// Script operations.
const (
	OpText   Op = "text"
	OpInsert Op = "insert"
	OpLeft   Op = "left"
	OpRight  Op = "right"
	OpStart  Op = "start"
	OpEnd    Op = "end"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
	OpCommit Op = "commit"
)

// Step is one scripted edit.
//
// In YAML a step is either a bare op name ("left", "commit"), or a single
// key map: {text: "x+1"}, {insert: frac}, or a repeated move such as
// {left: 3}.
type Step struct {
	Op    Op
	Arg   string
	Count int
}

// String returns the step in its YAML short form.
func (s Step) String() string {
	switch {
	case s.Arg != "":
		return fmt.Sprintf("%s: %q", s.Op, s.Arg)
	case s.Count > 1:
		return fmt.Sprintf("%s: %d", s.Op, s.Count)
	default:
		return string(s.Op)
	}
}

func (s Step) repeatable() bool {
	switch s.Op {
	case OpLeft, OpRight, OpDelete:
		return true
	}
	return false
}

func (s Step) validate() error {
	switch s.Op {
	case OpText, OpInsert:
		if s.Arg == "" {
			return fmt.Errorf("%w: %s needs a value", ErrInvalidArg, s.Op)
		}
	case OpLeft, OpRight, OpDelete, OpStart, OpEnd, OpClear, OpCommit:
		if s.Arg != "" {
			return fmt.Errorf("%w: %s takes no text", ErrInvalidArg, s.Op)
		}
		if s.Count < 0 || (s.Count > 1 && !s.repeatable()) {
			return fmt.Errorf("%w: bad count %d for %s", ErrInvalidArg, s.Count, s.Op)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
	return nil
}

// UnmarshalYAML decodes the scalar and single key map step forms.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Step{Op: Op(node.Value), Count: 1}
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: step must have exactly one key", node.Line)
		}
		key, val := node.Content[0], node.Content[1]
		*s = Step{Op: Op(key.Value), Count: 1}
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %s value must be a scalar", val.Line, key.Value)
		}
		switch s.Op {
		case OpText, OpInsert:
			s.Arg = val.Value
		default:
			n, err := strconv.Atoi(val.Value)
			if err != nil || n < 1 {
				return fmt.Errorf("line %d: %w: %s count %q", val.Line, ErrInvalidArg, key.Value, val.Value)
			}
			s.Count = n
		}
	default:
		return fmt.Errorf("line %d: step must be a string or a map", node.Line)
	}

	if err := s.validate(); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalYAML encodes the step in its short form.
func (s Step) MarshalYAML() (any, error) {
	switch {
	case s.Arg != "":
		return map[string]string{string(s.Op): s.Arg}, nil
	case s.Count > 1:
		return map[string]int{string(s.Op): s.Count}, nil
	default:
		return string(s.Op), nil
	}
}

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and decodes the YAML script at path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// StepError reports the step at which a run failed.
type StepError struct {
	Index int
	Step  Step
	Err   error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Result summarizes a script run.
type Result struct {
	// Steps is the number of steps applied.
	Steps int

	// Commits holds the entries committed by the script, in order.
	Commits []*history.Entry

	// Markup is the target's markup after the last step.
	Markup string
}

// Run applies the script's steps to t in order, stopping at the first error.
func (s *Script) Run(t Target) (*Result, error) {
	res := &Result{}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return res, &StepError{Index: i, Step: step, Err: err}
		}
		entry, err := apply(t, step)
		if err != nil {
			return res, &StepError{Index: i, Step: step, Err: err}
		}
		if entry != nil {
			res.Commits = append(res.Commits, entry)
		}
		res.Steps++
	}
	res.Markup = t.Markup()
	return res, nil
}

func apply(t Target, step Step) (*history.Entry, error) {
	count := step.Count
	if count < 1 {
		count = 1
	}

	switch step.Op {
	case OpText:
		return nil, t.InsertText(step.Arg)
	case OpInsert:
		return nil, t.InsertSymbol(step.Arg)
	case OpLeft:
		repeat(count, t.SeekLeft)
	case OpRight:
		repeat(count, t.SeekRight)
	case OpDelete:
		repeat(count, t.DeleteBackward)
	case OpStart:
		t.SeekStart()
	case OpEnd:
		t.SeekEnd()
	case OpClear:
		t.Clear()
	case OpCommit:
		return t.Commit()
	}
	return nil, nil
}

// repeat calls fn up to n times, stopping early once it reports no change.
func repeat(n int, fn func() bool) {
	for i := 0; i < n; i++ {
		if !fn() {
			return
		}
	}
}
