package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/tracegraph/builtin"
	"github.com/simon-lentz/tracegraph/connect"
	"github.com/simon-lentz/tracegraph/discover"
	"github.com/simon-lentz/tracegraph/graph"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

// newConvertCmd builds the convert verb: it runs source auto-discovery
// (package discover) over a single path argument and, on a match, executes
// the resulting graph the same way run does — convert translates to run
// arguments and executes them.
func newConvertCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert PATH",
		Short: "Discover a trace source for PATH and run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, app, args[0])
		},
	}
	return cmd
}

func runConvert(cmd *cobra.Command, app *appContext, path string) error {
	classes := app.registry.All()
	groups, unclaimed := discover.Run(classes, []string{path}, nil)
	if len(unclaimed) > 0 {
		return fmt.Errorf("no registered source claims %q", path)
	}

	winner := groups[0]
	class, ok := app.registry.Lookup(winner.Class)
	if !ok {
		return fmt.Errorf("internal error: discovered class %s vanished from the registry", winner.Class)
	}

	sink, ok := app.registry.Lookup(builtin.DummySinkID)
	if !ok {
		return fmt.Errorf("internal error: %s is not registered", builtin.DummySinkID)
	}

	cliSource := location.MustNewSourceID("cli")
	conn, res := connect.Parse(cliSource, "src:snk")
	if !res.OK() {
		return diagError(res)
	}

	cfg := graph.Config{
		Sources:     []graph.ComponentConfig{{Class: class, Name: "src", Params: value.NewMap()}},
		Sinks:       []graph.ComponentConfig{{Class: sink, Name: "snk", Params: value.NewMap()}},
		Connections: []connect.Connection{conn},
	}

	g, buildRes := graph.Build(cliSource, cfg)
	if !buildRes.OK() {
		return diagError(buildRes)
	}
	defer g.Teardown()

	status, runRes := g.Run(graph.NewInterrupter())
	if !runRes.OK() {
		return diagError(runRes)
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}
