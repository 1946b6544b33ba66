// Package main provides the atlas command-line tool for inspecting and
// importing historical map catalogs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// globalFlags are shared by every command.
type globalFlags struct {
	catalog string
	lenient bool
	json    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Inspect historical map catalogs and resolve them at a year",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.catalog, "catalog", "c", "", "Library file (JSON or YAML); the built-in library when empty")
	rootCmd.PersistentFlags().BoolVar(&flags.lenient, "lenient", false, "Load catalogs with integrity errors instead of rejecting them")
	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(
		newValidateCmd(flags),
		newMapsCmd(flags),
		newRenderCmd(flags),
		newEventsCmd(flags),
		newRelatedCmd(flags),
		newImportCmd(flags),
	)

	return rootCmd
}
