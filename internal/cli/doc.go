// Package cli implements the gridwatch command tree: the interactive
// dashboard (the root command and watch) plus one-shot simulate, health,
// info, init and config commands for scripts and pipes.
package cli
