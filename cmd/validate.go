// Package cmd provides the command line interface for nisclient
/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateCommand represents the validate command for nisclient CLI.
type ValidateCommand struct{}

// NewValidateCommand creates a new ValidateCommand.
func NewValidateCommand() *ValidateCommand {
	return &ValidateCommand{}
}

// GetCobraCommand returns the cobra command for validate operations.
func (c *ValidateCommand) GetCobraCommand() *cobra.Command {
	var opts inputOptions

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates NIS client parameters against host facts",
		Long: `Validates NIS client parameters against host facts.

Runs the full resolution without printing the resource set. Exits non-zero
with the first parameter or platform error found. Useful in CI pipelines
that gate parameter changes.

Examples:
  nisclient validate --facts facts.yaml --params params.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd, getApp(cmd), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addInputFlags(validateCmd, &opts)

	return validateCmd
}

// Run executes the validate command.
func (c *ValidateCommand) Run(cmd *cobra.Command, app *App, opts inputOptions) error {
	set, err := opts.resolve(cmd, app)
	if err != nil {
		app.Logger.Debug("Validation failed", "error", err)
		return err
	}

	services := set.Services()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "OK: %d resources, service %s\n", set.Len(), services[0].Name)
	return err
}
