package cmd

import (
	"github.com/spf13/cobra"
)

// ResolveOptions holds resolve command options.
type ResolveOptions struct {
	inputOptions
	Output string
}

// ResolveCommand represents the resolve command.
type ResolveCommand struct{}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand() *ResolveCommand {
	return &ResolveCommand{}
}

// GetCobraCommand returns the cobra command for resolving the resource set.
func (c *ResolveCommand) GetCobraCommand() *cobra.Command {
	var opts ResolveOptions

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the NIS client resource set for a host",
		Long: `Resolve validates the NIS client parameters against the host facts and
prints the resulting resources in dependency order.

Examples:
  # Resolve against a facts file with parameters from flags
  nisclient resolve --facts facts.yaml --domainname example.com --server 10.0.0.1

  # Resolve for the local host using a parameters file
  nisclient resolve --detect --params params.yaml --output table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd, getApp(cmd), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addInputFlags(resolveCmd, &opts.inputOptions)
	addOutputFlag(resolveCmd, &opts.Output)

	return resolveCmd
}

// Run executes the resolve command.
func (c *ResolveCommand) Run(cmd *cobra.Command, app *App, opts ResolveOptions) error {
	set, err := opts.resolve(cmd, app)
	if err != nil {
		return err
	}

	out, err := NewResolveOutput(set)
	if err != nil {
		return err
	}

	return PrintOutput(cmd.OutOrStdout(), outputFormat(app, opts.Output), out)
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "", "Output format (yaml, json, table)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// outputFormat returns the flag value or the configured default.
func outputFormat(app *App, flag string) string {
	if flag != "" {
		return flag
	}
	if app.Config.OutputFormat != "" {
		return app.Config.OutputFormat
	}
	return FormatYAML
}
