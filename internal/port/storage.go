package port

import (
	"context"
	"io"
)

// ObjectStorage abstracts document storage. Keys are opaque; the local-disk
// and S3 implementations each map them to their own layout.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
