// Package bundle implements the hash-addressed store for the UI archive.
//
// A bundle is a ZIP archive of static web assets. Store.Materialize reads the
// whole archive into memory, hashes it (uppercase hex MD5) and extracts it to
// <storage-root>/Temp/SPA/<hash>. When index.html already exists there the
// extraction is skipped; otherwise every older extraction under Temp/SPA is
// removed first, so at most one version is kept on disk.
//
// # Once per Store
//
// A Store materializes exactly once. Later calls return the cached Bundle
// without reading the stream again. Concurrent materializations of the same
// target directory, even from different Stores, are collapsed with
// singleflight so two extractions never race on one directory.
//
// # Sources
//
// OpenFile and OpenObject produce the archive stream from a local file or from
// an S3/MinIO bucket (core/storage).
//
// # Usage
//
//	store := bundle.NewStore(root, logger, nil)
//	b, err := store.Materialize(src)
//	if errors.Is(err, apperr.ErrArchiveCorrupt) {
//	    // the shipped bundle is broken
//	}
//	fmt.Println(b.Hash, b.Path)
package bundle
