package blob

import "context"

// FileStore is the blob storage boundary. The core only ever reads a
// stored file in full, deletes it alongside its document, and hands out
// upload URLs; writes happen directly from the client to storage.
type FileStore interface {
	// Get returns the file bytes or model.ErrFileNotFound.
	Get(ctx context.Context, fileId string) ([]byte, error)
	Delete(ctx context.Context, fileId string) error
	// GenerateUploadURL returns a fresh storage key and a presigned URL
	// the client can PUT the file to.
	GenerateUploadURL(ctx context.Context, filename string) (fileId string, url string, err error)
	// GenerateDownloadURL returns a presigned GET URL for an existing
	// file.
	GenerateDownloadURL(ctx context.Context, fileId string) (string, error)
}
