package repository

import "context"

// ProgressFunc reports per-file upload progress in bytes.
type ProgressFunc func(uploaded, total int64)

// StorageRepository - object storage collaborator for image blobs.
type StorageRepository interface {
	// Upload stores a blob under key and returns its public URL. progress may
	// be nil.
	Upload(ctx context.Context, key, contentType string, data []byte, progress ProgressFunc) (string, error)

	// Delete removes a blob by its public URL. Callers treat failures as
	// best-effort: a storage deletion failure never blocks the draft update.
	Delete(ctx context.Context, url string) error
}
