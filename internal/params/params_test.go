package params

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factDefaults = Defaults{DomainName: "example.com"}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse(nil, factDefaults)
	require.NoError(t, err)

	assert.Equal(t, Parameters{
		DomainName:    "example.com",
		Server:        "127.0.0.1",
		Broadcast:     false,
		PackageEnsure: "installed",
		ServiceEnsure: ServiceRunning,
	}, p)
	assert.True(t, p.ServiceEnsure.Enable())
}

func TestParse_Overrides(t *testing.T) {
	p, err := Parse(map[string]any{
		"domainname":     "test.ing",
		"server":         "192.168.1.1",
		"broadcast":      true,
		"package_name":   []any{"test", "ing"},
		"package_ensure": "absent",
		"service_name":   "mynisservice",
		"service_ensure": "stopped",
	}, factDefaults)
	require.NoError(t, err)

	assert.Equal(t, "test.ing", p.DomainName)
	assert.Equal(t, "192.168.1.1", p.Server)
	assert.True(t, p.Broadcast)
	assert.Equal(t, []string{"test", "ing"}, p.PackageNames)
	assert.Equal(t, "absent", p.PackageEnsure)
	assert.Equal(t, "mynisservice", p.ServiceName)
	assert.Equal(t, ServiceStopped, p.ServiceEnsure)
	assert.False(t, p.ServiceEnsure.Enable())
}

func TestParse_PackageNameForms(t *testing.T) {
	p, err := Parse(map[string]any{"package_name": "mynispackage"}, factDefaults)
	require.NoError(t, err)
	assert.Equal(t, []string{"mynispackage"}, p.PackageNames)

	p, err = Parse(map[string]any{"package_name": []string{"a", "b"}}, factDefaults)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.PackageNames)
}

func TestParse_TypeValidation(t *testing.T) {
	validations := map[string]struct {
		names   []string
		valid   []any
		invalid []any
		message string
	}{
		"Boolean": {
			names:   []string{"broadcast"},
			valid:   []any{true, false},
			invalid: []any{"true", "false", "string", []any{"array"}, map[string]any{"ha": "sh"}, 3, 2.42, nil},
			message: "expects a Boolean value",
		},
		"String": {
			names:   []string{"package_ensure", "service_name"},
			valid:   []any{"string"},
			invalid: []any{"", []any{"array"}, map[string]any{"ha": "sh"}, 3, 2.42, true, false, nil},
			message: "expects a non-empty String value",
		},
		"Fqdn": {
			names:   []string{"domainname"},
			valid:   []any{"string", "127.0.0.1", "test.ing"},
			invalid: []any{"", "bad..name", "-leading.example.com", "tab\tname", []any{"array"}, map[string]any{"ha": "sh"}, 3, 2.42, true, false},
			message: "expects a fully qualified domain name",
		},
		"Host": {
			names:   []string{"server"},
			valid:   []any{"localhost", "127.0.0.1", "www.test.ing", "::1"},
			invalid: []any{"", "not a host", "line\nbreak", "bad_host", "foo-", "-foo", "host.", "a..b", []any{"array"}, map[string]any{"ha": "sh"}, 3, 2.42, true, false},
			message: "expects a hostname or IP address",
		},
		"service_ensure": {
			names:   []string{"service_ensure"},
			valid:   []any{"running", "stopped"},
			invalid: []any{"invalid", "Running", []any{"array"}, map[string]any{"ha": "sh"}, 3, 2.42, true, false},
			message: "valid values are stopped, running",
		},
		"String or Array": {
			names:   []string{"package_name"},
			valid:   []any{"string", []any{"array"}, []any{"test", "ing"}},
			invalid: []any{"", []any{}, []any{""}, []any{"ok", 3}, []any{"x", "x"}, []string{"x", "x"}, map[string]any{"ha": "sh"}, 3, 2.42, true, false},
			message: "expects a non-empty String or a non-empty Array of non-empty Strings",
		},
	}

	for typ, v := range validations {
		for _, name := range v.names {
			for _, valid := range v.valid {
				t.Run(fmt.Sprintf("%s %s valid %v (%T)", typ, name, valid, valid), func(t *testing.T) {
					_, err := Parse(map[string]any{name: valid}, factDefaults)
					assert.NoError(t, err)
				})
			}
			for _, invalid := range v.invalid {
				t.Run(fmt.Sprintf("%s %s invalid %v (%T)", typ, name, invalid, invalid), func(t *testing.T) {
					_, err := Parse(map[string]any{name: invalid}, factDefaults)
					require.Error(t, err)

					var verr *ValidationError
					require.True(t, errors.As(err, &verr))
					assert.Equal(t, name, verr.Parameter)
					assert.Contains(t, err.Error(), v.message)
				})
			}
		}
	}
}

func TestParse_UnknownParameter(t *testing.T) {
	_, err := Parse(map[string]any{"servers": "a", "aaa": 1}, factDefaults)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "aaa", verr.Parameter)
	assert.Contains(t, err.Error(), "unknown parameter")
}

func TestParse_DomainRequired(t *testing.T) {
	_, err := Parse(map[string]any{}, Defaults{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parameter "domainname"`)

	p, err := Parse(map[string]any{"domainname": "nis.example.org"}, Defaults{})
	require.NoError(t, err)
	assert.Equal(t, "nis.example.org", p.DomainName)
}

func TestParse_FirstErrorInFixedOrder(t *testing.T) {
	_, err := Parse(map[string]any{
		"service_ensure": "bogus",
		"broadcast":      "yes",
	}, factDefaults)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "broadcast", verr.Parameter)
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "string value",
			err:      &ValidationError{Parameter: "broadcast", Expected: "a Boolean value", Value: "true"},
			expected: `parameter "broadcast" expects a Boolean value, got "true" (string)`,
		},
		{
			name:     "numeric value",
			err:      &ValidationError{Parameter: "server", Expected: "a hostname or IP address", Value: 3},
			expected: `parameter "server" expects a hostname or IP address, got 3 (int)`,
		},
		{
			name:     "nil value",
			err:      &ValidationError{Parameter: "broadcast", Expected: "a Boolean value"},
			expected: `parameter "broadcast" expects a Boolean value, got undef`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParameters_Validate(t *testing.T) {
	p := New(factDefaults)
	require.NoError(t, p.Validate())

	p.ServiceEnsure = "restarted"
	assert.Error(t, p.Validate())

	p = New(factDefaults)
	p.PackageNames = []string{"ok", ""}
	assert.Error(t, p.Validate())

	p = New(factDefaults)
	p.PackageNames = []string{"ypbind", "ypbind"}
	var verr *ValidationError
	require.ErrorAs(t, p.Validate(), &verr)
	assert.Equal(t, NamePackageName, verr.Parameter)

	p = New(factDefaults)
	p.Server = "bad_host"
	require.ErrorAs(t, p.Validate(), &verr)
	assert.Equal(t, NameServer, verr.Parameter)

	p = New(factDefaults)
	p.Server = "bad host"
	assert.Error(t, p.Validate())
}
