// Package main provides the entry point for the fundradar CLI.
package main

import "github.com/fundradar/fundradar/cmd/fundradar/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
