package main

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/sem-cli/internal/cli"
	"github.com/blackwell-systems/sem-cli/internal/config"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// ~/.sem/config.yaml and SEM_* defaults, before any flag is parsed.
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "sem: reading config: %v\n", err)
		os.Exit(1)
	}

	// Execute prints its own error line.
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
