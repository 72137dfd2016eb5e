package cmd

import (
	"github.com/spf13/cobra"
)

// RenderOptions holds render command options.
type RenderOptions struct {
	inputOptions
	Root   string
	DryRun bool
	Backup bool
	Output string
}

// RenderCommand represents the render command.
type RenderCommand struct{}

// NewRenderCommand creates a new RenderCommand.
func NewRenderCommand() *RenderCommand {
	return &RenderCommand{}
}

// GetCobraCommand returns the cobra command for staging file resources.
func (c *RenderCommand) GetCobraCommand() *cobra.Command {
	var opts RenderOptions

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Stage the resolved files under a directory",
		Long: `Render resolves the resource set and writes its files and directories
under a staging root for inspection. Packages, commands and services are
not applied.

Examples:
  nisclient render --facts facts.yaml --domainname example.com --root ./rendered
  nisclient render --detect --root /tmp/nis --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd, getApp(cmd), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addInputFlags(renderCmd, &opts.inputOptions)
	addOutputFlag(renderCmd, &opts.Output)
	renderCmd.Flags().StringVar(&opts.Root, "root", "", "Staging root directory (defaults to renderRoot from config)")
	renderCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report changes without writing")
	renderCmd.Flags().BoolVar(&opts.Backup, "backup", false, "Keep a timestamped copy of replaced files")

	return renderCmd
}

// Run executes the render command.
func (c *RenderCommand) Run(cmd *cobra.Command, app *App, opts RenderOptions) error {
	set, err := opts.resolve(cmd, app)
	if err != nil {
		return err
	}

	fsOpts := app.FSService.DefaultOptions()
	if opts.Root != "" {
		fsOpts.Root = opts.Root
	}
	if cmd.Flags().Changed("backup") {
		fsOpts.Backup = opts.Backup
	}
	fsOpts.DryRun = opts.DryRun

	result, err := app.FSService.Materialize(set, fsOpts)
	if err != nil {
		return err
	}

	return PrintOutput(cmd.OutOrStdout(), outputFormat(app, opts.Output), RenderOutput{Result: *result})
}
