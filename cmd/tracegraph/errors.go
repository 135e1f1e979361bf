package main

import (
	"errors"

	"github.com/simon-lentz/tracegraph/diag"
)

// diagError renders a failing diag.Result the way a human reads a compiler
// error: one line per issue, via the same Renderer the rest of the core
// uses for diagnostics.
func diagError(res diag.Result) error {
	r := diag.NewRenderer()
	return errors.New(r.RenderResult(res))
}
