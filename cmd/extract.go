package cmd

import (
	"context"

	"app-webserver/core/bundle"
	"app-webserver/core/logger"
	"app-webserver/core/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the UI bundle without serving it",
	Long:  `Materializes the UI bundle under <storage_root>/Temp/SPA and prints its content hash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		archive, err := bundle.Open(context.Background(), cfg.Bundle, cfg.Storage)
		if err != nil {
			return err
		}

		store := bundle.NewStore(cfg.Bundle.StorageRoot, logg, metrics.New())
		b, err := store.Materialize(archive)
		if err != nil {
			_ = archive.Close()
			return err
		}

		logg.Info("Bundle extracted",
			zap.String("hash", b.Hash),
			zap.String("path", b.Path))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)
}
