package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/tracegraph/ini"
	"github.com/simon-lentz/tracegraph/location"
	"github.com/simon-lentz/tracegraph/value"
)

type queryOptions struct {
	params string
}

// newQueryCmd builds the query verb: a thin collaborator that invokes a
// component class's optional class-level query and prints the result as
// JSON via [value.Value.ToJSON].
func newQueryCmd(app *appContext) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query COMPONENT OBJECT",
		Short: "Send a class-level query and print the result as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, app, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.params, "params", "", "KEY=VALUE,... query parameters")

	return cmd
}

func runQuery(cmd *cobra.Command, app *appContext, ref, object string, opts *queryOptions) error {
	id, err := parseClassRef(ref)
	if err != nil {
		return err
	}
	class, ok := app.registry.Lookup(id)
	if !ok {
		return fmt.Errorf("no registered component %s", id)
	}
	if !class.Queryable() {
		return fmt.Errorf("component %s does not support queries", id)
	}

	params := value.NewMap()
	if opts.params != "" {
		parsed, res := ini.Parse(location.MustNewSourceID("cli"), opts.params)
		if !res.OK() {
			return diagError(res)
		}
		params = parsed
	}

	result, err := class.Query(object, params)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result.ToJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal query result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
