package bundle

import (
	"context"
	"io"
	"os"

	"app-webserver/core/apperr"
	"app-webserver/core/storage"

	"github.com/minio/minio-go/v7"
)

// OpenFile opens a bundle archive on the local filesystem.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "open bundle archive")
	}
	return f, nil
}

// OpenObject opens a bundle archive stored in an S3/MinIO bucket.
// The object is stat'ed first so a missing key fails here rather than
// surfacing as a read error during Materialize.
func OpenObject(ctx context.Context, client storage.Client, bucket, object string) (io.ReadCloser, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "check bucket %s", bucket)
	}
	if !exists {
		return nil, apperr.New(apperr.KindStorageUnavailable, "bucket %s does not exist", bucket)
	}

	if _, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{}); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "stat %s/%s", bucket, object)
	}

	rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, err, "get %s/%s", bucket, object)
	}
	return rc, nil
}
