package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/nisclient/internal/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfigShowCommand(t *testing.T) {
	app, _ := newTestApp(t, testutil.WithOutputFormat("table"), testutil.WithRPCBindReleases("6", "7", "8"))

	output, err := runWithApp(t, app, NewConfigShowCommand().GetCobraCommand())
	require.NoError(t, err)

	assert.Contains(t, output, "outputFormat: table")
	assert.Contains(t, output, "redhatRPCBindReleases:")
	assert.Contains(t, output, `- "8"`)
}

func TestConfigCommandHasShow(t *testing.T) {
	cmd := NewConfigCommand().GetCobraCommand()
	show, _, err := cmd.Find([]string{"show"})
	require.NoError(t, err)
	assert.Equal(t, "show", show.Name())
}
