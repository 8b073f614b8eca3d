// Package command defines the lanes command line: the root command that
// opens the timeline viewer and the stats subcommand that summarizes traces
// without a terminal UI.
package command
