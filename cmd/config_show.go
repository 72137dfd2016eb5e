// Package cmd provides config show command functionality for nisclient CLI
package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigShowCommand represents the config show command.
type ConfigShowCommand struct{}

// NewConfigShowCommand creates a new ConfigShowCommand.
func NewConfigShowCommand() *ConfigShowCommand {
	return &ConfigShowCommand{}
}

// GetCobraCommand returns the cobra command for config show operations.
func (c *ConfigShowCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the current configuration including defaults and overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return PrintOutput(cmd.OutOrStdout(), FormatYAML, getApp(cmd).Config)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
