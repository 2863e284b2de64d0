// Package config provides configuration management for the web server.
//
// Values come from a .env file (when present) and environment variables,
// with defaults read from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: bind URL, default port, listen-all, debug and metrics switches
//   - Bundle: archive source (file or s3), path/object and storage root
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Environment keys are the upper-cased section and field joined by an
// underscore, e.g. SERVER_DEFAULT_PORT or BUNDLE_SOURCE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.DefaultPort)
package config
