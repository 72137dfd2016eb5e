package cmd

import (
	"github.com/spf13/cobra"
)

// FactsOptions holds facts command options.
type FactsOptions struct {
	inputOptions
	Output string
}

// FactsCommand represents the facts command.
type FactsCommand struct{}

// NewFactsCommand creates a new FactsCommand.
func NewFactsCommand() *FactsCommand {
	return &FactsCommand{}
}

// GetCobraCommand returns the cobra command for printing host facts.
func (c *FactsCommand) GetCobraCommand() *cobra.Command {
	var opts FactsOptions

	factsCmd := &cobra.Command{
		Use:   "facts",
		Short: "Print the host facts used for resolution",
		Long: `Print the host facts used for resolution, either detected from the local
host (the default) or read from a facts file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd, getApp(cmd), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addFactsFlags(factsCmd, &opts.inputOptions)
	addOutputFlag(factsCmd, &opts.Output)

	return factsCmd
}

// Run executes the facts command.
func (c *FactsCommand) Run(cmd *cobra.Command, app *App, opts FactsOptions) error {
	if opts.FactsFile == "" && app.Config.FactsFile == "" {
		opts.Detect = true
	}

	f, err := opts.loadFacts(cmd.Context(), app)
	if err != nil {
		return err
	}

	return PrintOutput(cmd.OutOrStdout(), outputFormat(app, opts.Output), FactsOutput{Facts: f})
}
