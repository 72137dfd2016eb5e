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
	"fmt"
	"io"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// Build information set by goreleaser.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const repositorySlug = "trly/nisclient"

// UpdateChecker reports the latest released version.
type UpdateChecker func(ctx context.Context) (version string, found bool, err error)

// VersionCommand represents the version command.
type VersionCommand struct {
	checkLatest UpdateChecker
}

// NewVersionCommand creates a new VersionCommand.
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{checkLatest: detectLatest}
}

// GetCobraCommand returns the cobra command for displaying version information.
func (c *VersionCommand) GetCobraCommand() *cobra.Command {
	var skipCheck bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for nisclient.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "nisclient version %s\n", Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", Commit)
			_, _ = fmt.Fprintf(out, "  built: %s\n", Date)
			_, _ = fmt.Fprintf(out, "  go: %s\n", runtime.Version())

			if !skipCheck {
				c.checkForUpdates(cmd.Context(), out)
			}
		},
	}

	versionCmd.Flags().BoolVar(&skipCheck, "skip-update-check", false, "Do not check for a newer release")

	return versionCmd
}

// checkForUpdates checks if a newer version is available and prints a message if so.
func (c *VersionCommand) checkForUpdates(ctx context.Context, out io.Writer) {
	// Development builds have no comparable version.
	if Version == "dev" {
		_, _ = fmt.Fprintln(out, "\nSkipping update check for development build.")
		return
	}

	_, _ = fmt.Fprintln(out, "\nChecking for updates...")

	latest, found, err := c.checkLatest(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Failed to check for updates: %v\n", err)
		return
	}

	if !found {
		_, _ = fmt.Fprintln(out, "No release found")
		return
	}

	if latest == "" {
		_, _ = fmt.Fprintln(out, "You are running the latest version.")
		return
	}

	_, _ = fmt.Fprintf(out, "Update available! New version: %s\n", latest)
}

// detectLatest returns the newer release version, or "" when Version is current.
func detectLatest(ctx context.Context) (string, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil || !found {
		return "", found, err
	}

	if latest.LessOrEqual(Version) {
		return "", true, nil
	}
	return latest.Version(), true, nil
}
