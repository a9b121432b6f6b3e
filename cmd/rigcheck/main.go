// Package main is the entry point for the rigcheck CLI.
//
// rigcheck provisions ephemeral cloud test environments (network stack plus
// a fleet of master and worker nodes with data disks) for integration
// testing of clustered storage deployments, and tears them down again.
//
// For detailed usage information, run:
//
//	rigcheck --help
package main

import (
	"fmt"
	"os"

	"github.com/rigcheck/rigcheck/cmd/rigcheck/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
