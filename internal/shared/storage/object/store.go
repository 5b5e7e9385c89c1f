package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving and deleting
// binary objects. Save returns a stable URL that is persisted alongside the
// owning record; Open and Delete accept that same URL.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (url string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, url string) (io.ReadCloser, error)
	Delete(ctx context.Context, url string) error
}
