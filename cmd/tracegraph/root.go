package main

import (
	"github.com/spf13/cobra"

	"github.com/simon-lentz/tracegraph/component"
)

// appContext is the shared state every subcommand reads: the populated
// class registry. Streamy's cmd/streamy threads an AppContext the same
// way, built once in main and passed down rather than reconstructed per
// subcommand.
type appContext struct {
	registry *component.Registry
}

func newRootCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tracegraph",
		Short:         "Build and run component graphs, and decode CTF trace metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newConvertCmd(app))
	cmd.AddCommand(newQueryCmd(app))
	cmd.AddCommand(newListPluginsCmd(app))

	return cmd
}
