package storage

import (
	"context"
	"io"
)

// StorageService defines the interface for raw page snapshot storage
type StorageService interface {
	// Upload uploads an object and returns its name
	Upload(ctx context.Context, bucket, objectName string, content []byte, contentType string) (string, error)

	// StreamUpload uploads an object from a reader
	StreamUpload(ctx context.Context, bucket, objectName string, reader io.Reader, contentType string) (string, error)

	// Download downloads an object
	Download(ctx context.Context, bucket, objectName string) ([]byte, error)

	// Delete deletes an object
	Delete(ctx context.Context, bucket, objectName string) error
}
