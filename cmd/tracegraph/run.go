package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/tracegraph/component"
	"github.com/simon-lentz/tracegraph/connect"
	"github.com/simon-lentz/tracegraph/graph"
	"github.com/simon-lentz/tracegraph/ini"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

type runOptions struct {
	components    []string
	names         []string
	params        []string
	connections   []string
	retryDuration string
}

// newRunCmd builds the run verb: explicit --component, --params, --name,
// --connect, --retry-duration options construct and execute a graph.
// --component, --name, and --params line up positionally — the i-th --name
// and --params apply to the i-th --component, an empty entry meaning
// "auto-assign" or "no parameters" respectively.
func newRunCmd(app *appContext) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build and run a component graph from explicit options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, app, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.components, "component", nil, "component reference kind.plugin.class (repeatable)")
	cmd.Flags().StringArrayVar(&opts.names, "name", nil, "instance name, positional with --component (repeatable)")
	cmd.Flags().StringArrayVar(&opts.params, "params", nil, "KEY=VALUE,... parameter string, positional with --component (repeatable)")
	cmd.Flags().StringArrayVar(&opts.connections, "connect", nil, "UPSTREAM[.PORT]:DOWNSTREAM[.PORT] connection (repeatable)")
	cmd.Flags().StringVar(&opts.retryDuration, "retry-duration", "", "sleep duration after an AGAIN result (default 100ms)")

	return cmd
}

func runRun(cmd *cobra.Command, app *appContext, opts *runOptions) error {
	cliSource := location.MustNewSourceID("cli")

	var cfg graph.Config
	for i, ref := range opts.components {
		cc, kind, err := resolveComponent(app, cliSource, ref, at(opts.names, i), at(opts.params, i))
		if err != nil {
			return fmt.Errorf("--component[%d] (%s): %w", i, ref, err)
		}
		switch kind {
		case component.Source:
			cfg.Sources = append(cfg.Sources, cc)
		case component.Filter:
			cfg.Filters = append(cfg.Filters, cc)
		case component.Sink:
			cfg.Sinks = append(cfg.Sinks, cc)
		}
	}

	for i, arg := range opts.connections {
		conn, res := connect.Parse(cliSource, arg)
		if !res.OK() {
			return fmt.Errorf("--connect[%d]: %w", i, diagError(res))
		}
		cfg.Connections = append(cfg.Connections, conn)
	}

	if opts.retryDuration != "" {
		d, err := time.ParseDuration(opts.retryDuration)
		if err != nil {
			return fmt.Errorf("--retry-duration: %w", err)
		}
		cfg.RetryDuration = d
	}

	g, res := graph.Build(cliSource, cfg)
	if !res.OK() {
		return diagError(res)
	}
	defer g.Teardown()

	status, runRes := g.Run(graph.NewInterrupter())
	if !runRes.OK() {
		return diagError(runRes)
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}

// resolveComponent looks up ref in the registry and builds its
// ComponentConfig from the positional name/params strings.
func resolveComponent(app *appContext, source location.SourceID, ref, name, params string) (graph.ComponentConfig, component.Kind, error) {
	id, err := parseClassRef(ref)
	if err != nil {
		return graph.ComponentConfig{}, 0, err
	}
	class, ok := app.registry.Lookup(id)
	if !ok {
		return graph.ComponentConfig{}, 0, fmt.Errorf("no registered component %s", id)
	}

	frozen := value.NewMap()
	if params != "" {
		parsed, res := ini.Parse(source, params)
		if !res.OK() {
			return graph.ComponentConfig{}, 0, diagError(res)
		}
		frozen = parsed
	}

	return graph.ComponentConfig{Class: class, Name: name, Params: frozen}, id.Kind, nil
}

// at returns the i-th element of s, or "" if s is too short.
func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
