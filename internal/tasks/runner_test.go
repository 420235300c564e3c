package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures reporter calls as "event:title" strings.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Started(title string)   { r.events = append(r.events, "start:"+title) }
func (r *recordingReporter) Succeeded(title string) { r.events = append(r.events, "ok:"+title) }
func (r *recordingReporter) Skipped(title, reason string) {
	r.events = append(r.events, fmt.Sprintf("skip:%s:%s", title, reason))
}
func (r *recordingReporter) Failed(title string, _ error) { r.events = append(r.events, "fail:"+title) }

func TestRunExecutesInOrder(t *testing.T) {
	var order []string
	step := func(name string) Task {
		return Task{
			Title: name,
			Action: func(context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	rep := &recordingReporter{}
	report, err := NewRunner(WithReporter(rep)).Run(context.Background(), []Task{step("a"), step("b"), step("c")})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []string{"start:a", "ok:a", "start:b", "ok:b", "start:c", "ok:c"}, rep.events)
	for _, res := range report.Results {
		assert.Equal(t, StateSucceeded, res.State)
	}
}

func TestRunDisabledTaskIsInvisible(t *testing.T) {
	called := false
	rep := &recordingReporter{}

	report, err := NewRunner(WithReporter(rep)).Run(context.Background(), []Task{
		{
			Title:   "Initialize git",
			Enabled: func() bool { return false },
			Action: func(context.Context) error {
				called = true
				return nil
			},
		},
	})

	require.NoError(t, err)
	assert.False(t, called, "disabled task must not run")
	assert.Empty(t, rep.events, "disabled task must not be reported")

	res, ok := report.Get("Initialize git")
	require.True(t, ok)
	assert.Equal(t, StateDisabled, res.State)
	assert.True(t, res.Skipped())
}

func TestRunSkippedTaskCarriesReason(t *testing.T) {
	called := false
	rep := &recordingReporter{}

	report, err := NewRunner(WithReporter(rep)).Run(context.Background(), []Task{
		{
			Title: "Install dependencies",
			Skip:  func() string { return "Pass --install" },
			Action: func(context.Context) error {
				called = true
				return nil
			},
		},
	})

	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, []string{"skip:Install dependencies:Pass --install"}, rep.events)

	res, _ := report.Get("Install dependencies")
	assert.Equal(t, StateSkipped, res.State)
	assert.Equal(t, "Pass --install", res.SkipReason)
}

func TestRunEmptySkipMessageRuns(t *testing.T) {
	called := false
	_, err := NewRunner().Run(context.Background(), []Task{
		{
			Title: "step",
			Skip:  func() string { return "" },
			Action: func(context.Context) error {
				called = true
				return nil
			},
		},
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	thirdRan := false

	rep := &recordingReporter{}
	report, err := NewRunner(WithReporter(rep)).Run(context.Background(), []Task{
		{Title: "one", Action: func(context.Context) error { return nil }},
		{Title: "two", Action: func(context.Context) error { return boom }},
		{Title: "three", Action: func(context.Context) error {
			thirdRan = true
			return nil
		}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "two", stepErr.Title)

	assert.False(t, thirdRan)
	assert.Equal(t, []string{"start:one", "ok:one", "start:two", "fail:two"}, rep.events)

	states := make([]State, 0, len(report.Results))
	for _, r := range report.Results {
		states = append(states, r.State)
	}
	assert.Equal(t, []State{StateSucceeded, StateFailed, StatePending}, states)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := NewRunner().Run(ctx, []Task{
		{Title: "copy", Action: func(context.Context) error {
			called = true
			return nil
		}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRunUsesExecFunc(t *testing.T) {
	var wrapped []string
	exec := func(ctx context.Context, title string, action func(context.Context) error) error {
		wrapped = append(wrapped, title)
		return action(ctx)
	}

	_, err := NewRunner(WithExec(exec)).Run(context.Background(), []Task{
		{Title: "a", Action: func(context.Context) error { return nil }},
		{Title: "b", Skip: func() string { return "no" }},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, wrapped, "skipped tasks are not executed")
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StatePending, "pending"},
		{StateDisabled, "disabled"},
		{StateSkipped, "skipped"},
		{StateRunning, "running"},
		{StateSucceeded, "succeeded"},
		{StateFailed, "failed"},
		{State(42), "State(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
