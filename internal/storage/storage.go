package storage

import (
	"context"
	"io"
)

// ObjectStore is the object storage surface the workflow consumes.
// Upload overwrites an existing object at objectName; PublicURL is
// synchronous and always succeeds for a path in a public bucket.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) error
	PublicURL(objectName string) string
}
