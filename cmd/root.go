package cmd

import (
	"fmt"
	"os"

	"app-webserver/core/bundle"
	"app-webserver/core/config"
	"app-webserver/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is stamped at build time with -ldflags "-X app-webserver/cmd.Version=...".
var Version = "dev"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "app-webserver",
	Short: "Embedded app web server",
	Long: `app-webserver serves a single-page UI bundle and the app's local API
namespaces from one loopback HTTP listener.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// loadConfig reads configuration and applies the command's flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("archive") {
		cfg.Bundle.Source = bundle.SourceFile
		cfg.Bundle.Path, _ = flags.GetString("archive")
	}
	if flags.Changed("storage-root") {
		cfg.Bundle.StorageRoot, _ = flags.GetString("storage-root")
	}
	if flags.Changed("url") {
		cfg.Server.URL, _ = flags.GetString("url")
	}
	if flags.Changed("port") {
		cfg.Server.DefaultPort, _ = flags.GetInt("port")
	}
	if flags.Changed("listen-all") {
		cfg.Server.ListenAll, _ = flags.GetBool("listen-all")
	}
	if flags.Changed("debug") {
		cfg.Server.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func init() {
	RootCmd.PersistentFlags().String("archive", "", "Path to the UI bundle archive (overrides bundle.source)")
	RootCmd.PersistentFlags().String("storage-root", "", "Application storage folder for extracted bundles")
}
