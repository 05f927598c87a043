// Package main is the entry point for the snowpark-explorer CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/snowpark-explorer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
