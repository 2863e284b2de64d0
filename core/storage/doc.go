// Package storage provides access to object storage for UI bundle archives.
//
// It wraps the MinIO Go client behind a small Client interface (bucket check,
// stat, download) so that a host can ship its management UI bundle in an S3 or
// MinIO bucket instead of on local disk. The interface is mocked in
// core/storage/mocks for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := bundle.OpenObject(ctx, client, cfg.Storage.Bucket, "ui/spa.zip")
package storage
