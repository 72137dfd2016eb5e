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
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trly/nisclient/internal/config"
	"github.com/trly/nisclient/internal/execx"
	"github.com/trly/nisclient/internal/log"
)

type contextKey string

const appContextKey contextKey = "app"

// RootCommand represents the root command for nisclient CLI.
type RootCommand struct {
	configFilePath string
	verbose        bool
}

// GetCobraCommand returns the cobra root command for nisclient CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nisclient",
		Short: "nisclient resolves the desired state of an NIS client host.",
		Long: `nisclient resolves the desired state of an NIS client host.
It validates NIS client parameters against host facts, selects the platform
profile and prints the packages, files, commands and service a convergence
engine has to apply, in dependency order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if getApp(cmd) != nil {
				return nil
			}

			provider := config.NewDefaultConfigProvider()
			if c.configFilePath != "" {
				provider.SetConfigFilePath(c.configFilePath)
			}
			cfg, err := provider.InitConfig()
			if err != nil {
				return err
			}
			if c.verbose {
				cfg.Verbose = true
			}

			log.Init(cfg.Verbose)
			logger := log.GetLogger()
			logger.Debug("Loaded configuration", "file", viper.ConfigFileUsed())

			app := NewApp(logger, provider, execx.NewRealRunner())
			cmd.SetContext(context.WithValue(cmd.Context(), appContextKey, app))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&c.configFilePath, "config", "", "Path to the configuration file")

	rootCmd.AddCommand(
		NewResolveCommand().GetCobraCommand(),
		NewValidateCommand().GetCobraCommand(),
		NewFactsCommand().GetCobraCommand(),
		NewRenderCommand().GetCobraCommand(),
		NewConfigCommand().GetCobraCommand(),
		NewVersionCommand().GetCobraCommand(),
	)

	return rootCmd
}

// getApp retrieves the App from the command context.
func getApp(cmd *cobra.Command) *App {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appContextKey).(*App)
	return app
}
