package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactsCommandDetectsByDefault(t *testing.T) {
	app, _ := newTestApp(t)

	output, err := runWithApp(t, app, NewFactsCommand().GetCobraCommand(), "--output", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "Linux", got["kernel"])
	assert.Equal(t, "RedHat", got["osfamily"])
	assert.Equal(t, "9", got["operatingsystemmajrelease"])
	assert.Equal(t, "example.com", got["domain"])
}

func TestFactsCommandFromFile(t *testing.T) {
	app, runner := newTestApp(t)

	output, err := runWithApp(t, app, NewFactsCommand().GetCobraCommand(), "--facts", writeFacts(t, solaris11Facts))
	require.NoError(t, err)

	assert.Contains(t, output, "kernel: SunOS")
	assert.Contains(t, output, "kernelrelease: \"5.11\"")
	assert.Empty(t, runner.GetCalls())
}

func TestFactsCommandTable(t *testing.T) {
	app, _ := newTestApp(t)

	output, err := runWithApp(t, app, NewFactsCommand().GetCobraCommand(), "--facts", writeFacts(t, redhat6Facts), "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, output, "Fact")
	assert.Contains(t, output, "osfamily")
	assert.Contains(t, output, "RedHat")
}

func TestFactsCommandDetectFailure(t *testing.T) {
	app, runner := newTestApp(t)
	runner.SetError("uname", []string{"-s"}, assert.AnError)

	_, err := runWithApp(t, app, NewFactsCommand().GetCobraCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detecting kernel")
}
