package stage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"cloud.google.com/go/storage"
)

// GCSStore stages files as objects in a Cloud Storage bucket under a fixed
// key prefix.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore returns a Store writing to gs://<bucket>/<prefix>/.
func NewGCSStore(client *storage.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Upload copies the local file to the bucket and returns its gs:// URI.
func (s *GCSStore) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	objectKey := path.Join(s.prefix, key)
	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("writing object %s: %w", objectKey, err)
	}
	// Close commits the object; an upload is not durable until it returns.
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", objectKey, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectKey), nil
}
