package fakerunner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner(t *testing.T) {
	t.Run("new runner starts empty", func(t *testing.T) {
		runner := New()
		assert.Empty(t, runner.GetCalls())
	})

	t.Run("set and get output", func(t *testing.T) {
		runner := New()
		runner.SetOutput("uname", []string{"-s"}, "Linux")

		output, err := runner.Output(context.Background(), "uname", "-s")
		require.NoError(t, err)
		assert.Equal(t, "Linux", output)
	})

	t.Run("set and get error", func(t *testing.T) {
		runner := New()
		expectedErr := errors.New("test error")
		runner.SetError("hostname", []string{"-f"}, expectedErr)

		_, err := runner.Output(context.Background(), "hostname", "-f")
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("unregistered command fails", func(t *testing.T) {
		runner := New()
		_, err := runner.Output(context.Background(), "uname", "-r")
		assert.Error(t, err)
	})

	t.Run("calls are recorded", func(t *testing.T) {
		runner := New()
		_, _ = runner.Output(context.Background(), "uname", "-s")
		_, _ = runner.Output(context.Background(), "uname", "-r")

		calls := runner.GetCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, Call{Name: "uname", Args: []string{"-r"}}, calls[1])
	})
}
