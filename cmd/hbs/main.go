// hbs renders notification templates locally with the same helper catalog
// the render worker uses.
//
// Usage:
//
//	hbs [--log-level LEVEL] <command> [flags]
//
// Commands:
//
//	render    Render a template against a JSON or YAML context
//	validate  Check that a template parses
//	helpers   List the registered helpers
package main

import (
	"fmt"
	"os"
)

// version is set at build time
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
