// Package tasks runs an ordered list of named steps with enable and skip
// gating, one at a time.
package tasks

import (
	"context"
	"fmt"

	"github.com/quickstart-dev/quickstart/internal/output"
)

// State is the lifecycle state of a single task.
type State int

const (
	// StatePending means the task has not been evaluated yet.
	StatePending State = iota
	// StateDisabled means Enabled returned false; the task is not part of the run.
	StateDisabled
	// StateSkipped means Skip returned a message; the action did not run.
	StateSkipped
	// StateRunning means the action is executing.
	StateRunning
	// StateSucceeded means the action returned nil.
	StateSucceeded
	// StateFailed means the action returned an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDisabled:
		return "disabled"
	case StateSkipped:
		return "skipped"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Task is one step of a run.
type Task struct {
	// Title is the human-readable step name.
	Title string

	// Enabled, if set and returning false, removes the task from the run.
	Enabled func() bool

	// Skip, if set and returning a non-empty message, skips the task with that message.
	Skip func() string

	// Action performs the step.
	Action func(ctx context.Context) error
}

// Result is the outcome of a single task.
type Result struct {
	Title string
	State State

	// SkipReason is the message returned by Skip.
	SkipReason string

	// Err is the action's error for failed tasks.
	Err error
}

// Skipped reports whether the task's action was not executed because it was
// disabled or skipped.
func (r Result) Skipped() bool {
	return r.State == StateDisabled || r.State == StateSkipped
}

// Report holds the results of a run in task order.
type Report struct {
	Results []Result
}

// Get returns the result for the task with the given title.
func (r *Report) Get(title string) (Result, bool) {
	for _, res := range r.Results {
		if res.Title == title {
			return res, true
		}
	}
	return Result{}, false
}

// StepError wraps the error of the task that halted a run.
type StepError struct {
	Title string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Reporter receives progress notifications for visible tasks.
type Reporter interface {
	Started(title string)
	Succeeded(title string)
	Skipped(title, reason string)
	Failed(title string, err error)
}

// ExecFunc runs a task action. It lets callers decorate execution, e.g. with a spinner.
type ExecFunc func(ctx context.Context, title string, action func(context.Context) error) error

// Runner executes tasks strictly in order.
type Runner struct {
	reporter Reporter
	exec     ExecFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(rn *Runner) {
		rn.reporter = r
	}
}

// WithExec sets the function used to execute actions.
func WithExec(exec ExecFunc) Option {
	return func(rn *Runner) {
		rn.exec = exec
	}
}

// NewRunner creates a Runner. Without options, progress is discarded and
// actions are called directly.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		reporter: nopReporter{},
		exec: func(ctx context.Context, _ string, action func(context.Context) error) error {
			return action(ctx)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates and executes tasks in order. The first failing task halts
// the run; its error is returned as a *StepError and later tasks stay pending.
// The returned Report is never nil.
func (r *Runner) Run(ctx context.Context, tasks []Task) (*Report, error) {
	report := &Report{Results: make([]Result, len(tasks))}
	for i, t := range tasks {
		report.Results[i] = Result{Title: t.Title, State: StatePending}
	}

	for i, t := range tasks {
		res := &report.Results[i]

		if err := ctx.Err(); err != nil {
			return report, &StepError{Title: t.Title, Err: err}
		}

		if t.Enabled != nil && !t.Enabled() {
			res.State = StateDisabled
			output.Debug("task disabled", "task", t.Title)
			continue
		}

		if t.Skip != nil {
			if reason := t.Skip(); reason != "" {
				res.State = StateSkipped
				res.SkipReason = reason
				r.reporter.Skipped(t.Title, reason)
				continue
			}
		}

		res.State = StateRunning
		r.reporter.Started(t.Title)

		var err error
		if t.Action != nil {
			err = r.exec(ctx, t.Title, t.Action)
		}
		if err != nil {
			res.State = StateFailed
			res.Err = err
			r.reporter.Failed(t.Title, err)
			return report, &StepError{Title: t.Title, Err: err}
		}

		res.State = StateSucceeded
		r.reporter.Succeeded(t.Title)
	}

	return report, nil
}

type nopReporter struct{}

func (nopReporter) Started(string)         {}
func (nopReporter) Succeeded(string)       {}
func (nopReporter) Skipped(string, string) {}
func (nopReporter) Failed(string, error)   {}
