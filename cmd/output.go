// Package cmd provides output formatting utilities for nisclient CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"

	"github.com/trly/nisclient/internal/facts"
	"github.com/trly/nisclient/internal/fs"
	"github.com/trly/nisclient/internal/resource"
)

// Supported output formats.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatTable = "table"
)

var outputFormats = []string{FormatYAML, FormatJSON, FormatTable}

// Tabular is implemented by values that can be printed as a table.
type Tabular interface {
	TableHeaders() []any
	TableRows() [][]any
}

// PrintOutput formats and prints data according to the specified output format.
func PrintOutput(w io.Writer, format string, data any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return printJSON(w, data)
	case FormatYAML, "yml":
		return printYAML(w, data)
	case FormatTable:
		t, ok := data.(Tabular)
		if !ok {
			return fmt.Errorf("table output is not supported for %T", data)
		}
		printTable(w, t)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (allowed: %s)", format, strings.Join(outputFormats, ", "))
	}
}

// printJSON outputs data as JSON.
func printJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML.
func printYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(data)
}

func printTable(w io.Writer, data Tabular) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(data.TableHeaders()...).WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	for _, row := range data.TableRows() {
		tbl.AddRow(row...)
	}
	tbl.Print()
}

// ResolveOutput is the resolved resource set in dependency order.
type ResolveOutput struct {
	Includes  []string            `yaml:"includes,omitempty" json:"includes,omitempty"`
	Order     []resource.Ref      `yaml:"order" json:"order"`
	Resources []resource.Resource `yaml:"resources" json:"resources"`
}

// NewResolveOutput orders set for printing.
func NewResolveOutput(set *resource.Set) (*ResolveOutput, error) {
	order, err := set.Order()
	if err != nil {
		return nil, err
	}

	out := &ResolveOutput{
		Includes:  set.Includes,
		Order:     order,
		Resources: make([]resource.Resource, 0, set.Len()),
	}
	for _, ref := range order {
		if r, ok := set.Lookup(ref); ok {
			out.Resources = append(out.Resources, r)
		}
	}
	return out, nil
}

// TableHeaders implements Tabular.
func (o *ResolveOutput) TableHeaders() []any {
	return []any{"#", "Resource", "Require", "Notify"}
}

// TableRows implements Tabular.
func (o *ResolveOutput) TableRows() [][]any {
	rows := make([][]any, 0, len(o.Order))
	for i, ref := range o.Order {
		var links resource.Links
		for _, r := range o.Resources {
			if r.Ref() == ref {
				links = r.Edges()
				break
			}
		}
		rows = append(rows, []any{i + 1, ref.String(), joinRefs(links.Require), joinRefs(links.Notify)})
	}
	return rows
}

func joinRefs(refs []resource.Ref) string {
	if len(refs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, ref.String())
	}
	return strings.Join(parts, ", ")
}

// FactsOutput prints facts.
type FactsOutput struct {
	facts.Facts `yaml:",inline"`
}

// TableHeaders implements Tabular.
func (o FactsOutput) TableHeaders() []any {
	return []any{"Fact", "Value"}
}

// TableRows implements Tabular.
func (o FactsOutput) TableRows() [][]any {
	return [][]any{
		{"kernel", string(o.Kernel)},
		{"osfamily", string(o.OSFamily)},
		{"operatingsystemmajrelease", o.OSMajorRelease},
		{"kernelrelease", o.KernelRelease},
		{"domain", o.Domain},
	}
}

// RenderOutput prints a staging result.
type RenderOutput struct {
	fs.Result `yaml:",inline"`
}

// TableHeaders implements Tabular.
func (o RenderOutput) TableHeaders() []any {
	return []any{"Path", "Status", "Backup"}
}

// TableRows implements Tabular.
func (o RenderOutput) TableRows() [][]any {
	rows := make([][]any, 0, len(o.Changes))
	for _, c := range o.Changes {
		backup := c.Backup
		if backup == "" {
			backup = "-"
		}
		rows = append(rows, []any{c.Path, string(c.Status), backup})
	}
	return rows
}
