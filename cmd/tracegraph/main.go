// Command tracegraph is the CLI front-end of the component graph runtime:
// a thin verb dispatcher over graph.Build/Run and ctf.Decode. Flag lexing
// itself stays minimal by design; the grammars that matter — connection
// syntax and parameter syntax — are delegated to packages connect and ini.
package main

import (
	"fmt"
	"os"
)

func main() {
	app := &appContext{registry: newRegistry()}

	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
