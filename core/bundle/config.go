package bundle

import (
	"context"
	"fmt"
	"io"

	"app-webserver/core/storage"
)

// Archive sources.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

// Config holds configuration for locating and extracting the UI bundle.
type Config struct {
	// Source is where the archive comes from: file or s3.
	Source string `mapstructure:"source" default:"file"`
	// Path is the archive path when Source is file.
	Path string `mapstructure:"path" default:"spa.zip"`
	// Object is the object key inside storage.bucket when Source is s3.
	Object string `mapstructure:"object" default:"spa.zip"`
	// StorageRoot is the application storage folder; bundles are extracted
	// under <StorageRoot>/Temp/SPA.
	StorageRoot string `mapstructure:"storage_root" default:"data"`
}

// Validate checks the source selection.
func (c Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.Path == "" {
			return fmt.Errorf("bundle path is required for source %q", c.Source)
		}
	case SourceS3:
		if c.Object == "" {
			return fmt.Errorf("bundle object is required for source %q", c.Source)
		}
	default:
		return fmt.Errorf("unknown bundle source %q", c.Source)
	}
	if c.StorageRoot == "" {
		return fmt.Errorf("bundle storage root is required")
	}
	return nil
}

// Open returns the archive stream selected by cfg. The storage client is only
// created for the s3 source.
func Open(ctx context.Context, cfg Config, storageCfg storage.Config) (io.ReadCloser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Source == SourceFile {
		return OpenFile(cfg.Path)
	}

	client, err := storage.NewClient(storageCfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return OpenObject(ctx, client, storageCfg.Bucket, cfg.Object)
}
