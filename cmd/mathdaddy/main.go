// Package main provides the mathdaddy CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/mathdaddy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
