package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/nisclient/internal/facts"
	"github.com/trly/nisclient/internal/fs"
	"github.com/trly/nisclient/internal/resource"
)

func TestPrintOutput(t *testing.T) {
	data := FactsOutput{Facts: facts.Facts{Kernel: facts.KernelLinux, OSFamily: facts.FamilyDebian, OSMajorRelease: "18.04"}}

	tests := []struct {
		name     string
		format   string
		contains []string
		wantErr  bool
	}{
		{name: "yaml", format: "yaml", contains: []string{"kernel: Linux", `operatingsystemmajrelease: "18.04"`}},
		{name: "yml alias", format: "yml", contains: []string{"osfamily: Debian"}},
		{name: "json", format: "JSON", contains: []string{`"osfamily": "Debian"`}},
		{name: "table", format: "table", contains: []string{"Fact", "18.04"}},
		{name: "unsupported", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := PrintOutput(&buf, tt.format, data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintOutputTableRequiresTabular(t *testing.T) {
	var buf bytes.Buffer
	err := PrintOutput(&buf, FormatTable, map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table output is not supported")
}

func TestResolveOutputRows(t *testing.T) {
	set := resource.NewSet()
	pkg := resource.NewPackage("ypbind", "installed")
	conf := resource.NewFile("/etc/yp.conf", "", "0644")
	conf.Require = []resource.Ref{pkg.Ref()}
	require.NoError(t, set.Add(conf, pkg))

	out, err := NewResolveOutput(set)
	require.NoError(t, err)

	assert.Equal(t, []resource.Ref{pkg.Ref(), conf.Ref()}, out.Order)
	assert.Equal(t, [][]any{
		{1, "Package[ypbind]", "-", "-"},
		{2, "File[/etc/yp.conf]", "Package[ypbind]", "-"},
	}, out.TableRows())
}

func TestRenderOutputRows(t *testing.T) {
	out := RenderOutput{Result: fs.Result{Changes: []fs.Change{
		{Path: "/etc/yp.conf", Status: fs.StatusUpdated, Backup: "/r/etc/yp.conf.1"},
		{Path: "/etc/defaultdomain", Status: fs.StatusCreated},
	}}}

	assert.Equal(t, [][]any{
		{"/etc/yp.conf", "updated", "/r/etc/yp.conf.1"},
		{"/etc/defaultdomain", "created", "-"},
	}, out.TableRows())
}
