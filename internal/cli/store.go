package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"leaddizioni/internal/config"
	"leaddizioni/internal/database"
	"leaddizioni/internal/repository"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured SQL store",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.UsesSQL() {
		return fmt.Errorf("store type %q has no migrations", cfg.StoreType)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", cfg.StoreType)
	return nil
}

func newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired session contexts",
		RunE:  runPurge,
	}
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := repository.OpenContextStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	purged, err := store.PurgeExpired(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Expired contexts deleted: %d\n", purged)
	return nil
}
