package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func newValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a library for integrity problems",
		Long: "Loads a library file (or the --catalog / built-in library) and reports every " +
			"integrity finding. Exits non-zero when any finding is an error.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := *flags
			if len(args) == 1 {
				f.catalog = args[0]
			}
			// Collect every finding rather than stopping at the first error.
			f.lenient = true
			return runValidate(cmd, &f)
		},
	}
}

func runValidate(cmd *cobra.Command, flags *globalFlags) error {
	_, issues, err := loadLibrary(cmd, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.json {
		if issues == nil {
			issues = []maps.Issue{}
		}
		if err := printJSON(out, issues); err != nil {
			return err
		}
	} else {
		for _, is := range issues {
			fmt.Fprintln(out, is.String())
		}
	}

	if maps.HasErrors(issues) {
		return fmt.Errorf("catalog has integrity errors")
	}
	if !flags.json {
		fmt.Fprintf(out, "ok: %d findings, no errors\n", len(issues))
	}
	return nil
}
