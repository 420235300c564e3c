package output

import (
	"fmt"
	"io"
	"sync"
)

// TaskReporter prints one line per finished step. Disabled steps never reach
// it, so they leave no trace in the output.
type TaskReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTaskReporter creates a TaskReporter writing to w.
func NewTaskReporter(w io.Writer) *TaskReporter {
	return &TaskReporter{w: w}
}

// Started logs the step at debug level. The spinner shows running steps.
func (r *TaskReporter) Started(title string) {
	Debug("step started", "step", title)
}

// Succeeded prints a check line for the step.
func (r *TaskReporter) Succeeded(title string) {
	r.println(FormatStepLine(title, StatusSucceeded, ""))
}

// Skipped prints the step with its skip reason.
func (r *TaskReporter) Skipped(title, reason string) {
	r.println(FormatStepLine(title, StatusSkipped, reason))
}

// Failed prints the step with the error that stopped it.
func (r *TaskReporter) Failed(title string, err error) {
	r.println(FormatStepLine(title, StatusFailed, err.Error()))
}

func (r *TaskReporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, line)
}
