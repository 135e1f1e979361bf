package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/tracegraph/plugin"
)

type listPluginsOptions struct {
	pluginPath string
}

// newListPluginsCmd builds the list-plugins verb: a thin collaborator that
// enumerates the registered component classes and, when a --plugin-path is
// given, cross-references plugin.jsonc manifests for descriptive metadata.
func newListPluginsCmd(app *appContext) *cobra.Command {
	opts := &listPluginsOptions{}

	cmd := &cobra.Command{
		Use:   "list-plugins",
		Short: "List registered component classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListPlugins(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.pluginPath, "plugin-path", "", "directory to scan for plugin.jsonc manifests")

	return cmd
}

func runListPlugins(cmd *cobra.Command, app *appContext, opts *listPluginsOptions) error {
	descriptions := make(map[string]string)
	if opts.pluginPath != "" {
		manifests, err := plugin.LoadManifestsFromDir(opts.pluginPath)
		if err != nil {
			return err
		}
		for _, m := range manifests {
			for _, c := range m.Classes {
				descriptions[c.Kind+"."+m.Name+"."+c.Name] = c.Description
			}
		}
	}

	for _, class := range app.registry.All() {
		id := class.ID()
		line := id.String()
		if desc, ok := descriptions[line]; ok && desc != "" {
			line += ": " + desc
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
