package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name      string
		facts     string
		args      []string
		wantOut   string
		wantError string
	}{
		{
			name:    "RedHat defaults",
			facts:   redhat6Facts,
			wantOut: "OK: 6 resources, service ypbind",
		},
		{
			name:    "Solaris defaults",
			facts:   solaris11Facts,
			wantOut: "OK: 8 resources, service nis/client",
		},
		{
			name:      "invalid server",
			facts:     redhat6Facts,
			args:      []string{"--server", "not a host"},
			wantError: `parameter "server"`,
		},
		{
			name:      "unsupported SunOS release",
			facts:     "kernel: SunOS\nosfamily: Solaris\nkernelrelease: \"5.12\"\ndomain: example.com\n",
			wantError: "Detected kernelrelease is <5.12>.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--facts", writeFacts(t, tt.facts)}, tt.args...)
			output, err := runWithApp(t, app, NewValidateCommand().GetCobraCommand(), args...)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.NotContains(t, output, "OK")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, tt.wantOut)
		})
	}
}
