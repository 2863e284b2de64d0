package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"app-webserver/core/bundle"
	"app-webserver/core/loader"
	"app-webserver/core/logger"
	"app-webserver/core/metrics"
	"app-webserver/core/server"
	"app-webserver/feature/account"
	"app-webserver/feature/app"
	"app-webserver/feature/billing"
	"app-webserver/feature/profiles"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the embedded web server",
	Long: `Extracts the UI bundle, binds the listen URL and serves the UI and the
API namespaces until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the bundle archive
		ctx := context.Background()
		archive, err := bundle.Open(ctx, cfg.Bundle, cfg.Storage)
		if err != nil {
			return err
		}

		// 4. Start the server with every namespace registered
		srv, err := server.Init(server.Options{
			Archive:     archive,
			Server:      cfg.Server,
			StorageRoot: cfg.Bundle.StorageRoot,
			Features: loader.Features{
				App:            app.NewFeature(Version, nil),
				ClientProfiles: profiles.NewFeature(logg),
				Account:        account.NewFeature(logg),
				Billing:        billing.NewFeature(),
			},
			Logger:  logg,
			Metrics: metrics.New(),
		})
		if err != nil {
			return err
		}

		// 5. Wait for a signal, then release the listener
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return srv.Close()
	},
}

func init() {
	startCmd.Flags().String("url", "", "Explicit listen URL, e.g. http://127.0.0.1:9090")
	startCmd.Flags().Int("port", server.DefaultPort, "Preferred loopback port when no URL is given")
	startCmd.Flags().Bool("listen-all", false, "Also listen on every active IPv4 interface")
	startCmd.Flags().Bool("debug", false, "Allow any CORS origin and disable static caching")
	RootCmd.AddCommand(startCmd)
}
