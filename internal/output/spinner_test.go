package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withoutTTY(t *testing.T) {
	t.Helper()
	orig := IsTTY
	IsTTY = func() bool { return false }
	t.Cleanup(func() { IsTTY = orig })
}

func TestRunWithSpinner_NoTTYRunsDirectly(t *testing.T) {
	withoutTTY(t)

	called := false
	err := RunWithSpinner(context.Background(), func(context.Context) error {
		called = true
		return nil
	}, WithTitle("Copy project files"))

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	withoutTTY(t)

	boom := errors.New("boom")
	err := RunWithSpinner(context.Background(), func(context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestRunWithSpinner_PassesContext(t *testing.T) {
	withoutTTY(t)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var got any
	_ = RunWithSpinner(ctx, func(ctx context.Context) error {
		got = ctx.Value(key{})
		return nil
	})

	assert.Equal(t, "v", got)
}
