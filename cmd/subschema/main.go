// Command subschema is the CLI entry point (spec §6): it delegates
// everything to internal/cli.Run so the logic stays testable without
// spawning a subprocess.
package main

import (
	"os"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
