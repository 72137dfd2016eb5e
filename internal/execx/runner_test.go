package execx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealRunner_Output(t *testing.T) {
	runner := NewRealRunner()
	ctx := context.Background()

	t.Run("successful command execution", func(t *testing.T) {
		output, err := runner.Output(ctx, "echo", "hello", "world")
		require.NoError(t, err)
		assert.Equal(t, "hello world", output)
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := runner.Output(ctx, "nonexistent-command-12345")
		assert.Error(t, err)
	})

	t.Run("stderr is reported on failure", func(t *testing.T) {
		_, err := runner.Output(ctx, "sh", "-c", "echo boom >&2; exit 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
