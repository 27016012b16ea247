package storage

import (
	"context"
	"io"
)

// FileStorage persists uploaded files. Reads go through the HTTP file server,
// so the interface only covers writes.
type FileStorage interface {
	// Upload stores the file under path and returns the stored path.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
