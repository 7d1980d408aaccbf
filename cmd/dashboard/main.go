// Package main is the entry point for the dashboard binary.
package main

import (
	"os"

	"github.com/maxviazov/reporting-dashboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
