package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save places the object under dir with a collision-proof name and returns the
// storage key, the byte count and the hex SHA-256 of the contents.
type ObjectStore interface {
	Save(ctx context.Context, dir string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, checksum string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	PublicURL(storageKey string) string
}
