// Command tealog inspects and edits persisted per-module log levels.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/tealog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
