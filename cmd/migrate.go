package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/euroviaje/trip-ledger/internal/storage"
	"github.com/euroviaje/trip-ledger/pkg/logger"
)

var migrateCmd = &cobra.Command{
	RunE:  runMigration,
	Use:   "migrate",
	Short: "apply pending schema migrations to the local database",
}

func runMigration(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.Open(cfg.Database, logger.L())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return nil
}
