package interfaces

import "context"

// UploadResult describes a stored file. Path is relative to the storage root
// and is what entity rows keep; URL is derived from it at read time.
type UploadResult struct {
	Path      string `json:"file_path"`
	URL       string `json:"file_url"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
}

// FileStore is the bucketed blob store behind the files API. The local disk
// implementation lives in internal/storage; an object store can replace it
// without touching callers.
type FileStore interface {
	Upload(ctx context.Context, content []byte, originalName, bucket, prefix string, maxSizeMB float64) (*UploadResult, error)
	Retrieve(ctx context.Context, path string) ([]byte, error)
	// Delete reports false when nothing was stored at path.
	Delete(ctx context.Context, path string) (bool, error)
	URL(path string) string
	Buckets() []string
}
