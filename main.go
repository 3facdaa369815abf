package main

import (
	"os"

	"github.com/jakoblorz/go-pwaforge/internal/cli"
)

func main() {
	// cobra already printed the error, just set the exit code.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
