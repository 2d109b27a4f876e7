// Package stage uploads source files to the intermediate object store that
// warehouse load jobs read from.
package stage

import "context"

// Store stages a local file under a destination key and returns the URI the
// warehouse loader should read. Keys are content addresses: re-uploading
// the same key overwrites the previous object, so retries are idempotent.
type Store interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
