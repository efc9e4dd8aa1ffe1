// Package media proxies image and contract uploads to the object storage
// backend. The rest of the system treats it as a black box returning a URL
// per stored object.
package media

import (
	"context"
	"io"
)

// Store is implemented by the object storage client.
type Store interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the object under key. Removing a missing object is not
	// an error.
	Remove(ctx context.Context, key string) error
}
