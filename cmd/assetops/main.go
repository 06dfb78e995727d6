// Package main is the entry point of the assetops dashboard.
package main

import (
	"os"

	"github.com/leapstack-labs/assetops/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
