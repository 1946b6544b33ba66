package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/config"
	"github.com/keyxmakerx/atlas/internal/database"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Replace the MariaDB catalog with a library file",
		Long: "Validates a library file (or the --catalog / built-in library), applies the " +
			"catalog schema migrations and replaces every stored map in one transaction. " +
			"Connection settings come from the DB_* environment variables.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := *flags
			if len(args) == 1 {
				f.catalog = args[0]
			}
			return runImport(cmd, &f)
		},
	}
}

func runImport(cmd *cobra.Command, flags *globalFlags) error {
	lib, _, err := loadLibrary(cmd, flags)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.NewMariaDB(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		return err
	}
	if err := maps.NewMariaDBRepository(db).Save(cmd.Context(), lib); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d maps (fingerprint %s)\n", len(lib.Maps), lib.Fingerprint)
	return nil
}
