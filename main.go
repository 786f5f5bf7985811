package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	root := &cobra.Command{
		Use:           "tes-saweria",
		Short:         "Bot Discord untuk notifikasi donasi Saweria",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(serveCmd(), statsCmd(), simulateCmd(), blacklistCmd())

	if err := root.Execute(); err != nil {
		slog.Error("❌ Fatal", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// openStore is shared by the offline commands; they never touch Discord or the socket.
func openStore(cfg config.Config) (*gorm.DB, *store.Store, error) {
	db, err := config.ConnectDB(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("database %s: %w", cfg.DatabasePath, err)
	}
	return db, store.New(db), nil
}
