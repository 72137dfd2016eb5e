package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYPConf(t *testing.T) {
	tests := []struct {
		name      string
		domain    string
		server    string
		broadcast bool
		want      string
	}{
		{
			name:   "server",
			domain: "example.com",
			server: "127.0.0.1",
			want:   "# This file is being maintained by Puppet.\n# DO NOT EDIT\ndomain example.com server 127.0.0.1\n",
		},
		{
			name:      "broadcast ignores server",
			domain:    "example.com",
			server:    "192.168.1.1",
			broadcast: true,
			want:      "# This file is being maintained by Puppet.\n# DO NOT EDIT\ndomain example.com broadcast\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YPConf(tt.domain, tt.server, tt.broadcast))
		})
	}
}

func TestDefaultDomain(t *testing.T) {
	assert.Equal(t, "example.com\n", DefaultDomain("example.com"))
}

func TestYPServers(t *testing.T) {
	assert.Equal(t, "192.168.1.1\n", YPServers("192.168.1.1"))
}
