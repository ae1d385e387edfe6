// Package cmd defines the Cobra command tree for the application.
// The root command downloads (and optionally extracts) one release asset,
// --list enumerates releases instead, and subcommands provide the version
// and the interactive TUI.
package cmd
