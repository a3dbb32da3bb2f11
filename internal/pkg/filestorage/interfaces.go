package filestorage

import (
	"context"
	"mime/multipart"
)

// FileStorage stores uploaded files and hands back the reference that gets
// persisted on the owning record (student photo, organization logo,
// enrollment document).
type FileStorage interface {
	// Save stores the upload under folder and returns its reference.
	// A nil header stores nothing and returns an empty reference.
	Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)

	// Delete removes a previously stored file. Unknown references are not an error.
	Delete(ctx context.Context, ref string) error

	// URL returns a publicly reachable URL for a stored reference.
	URL(ref string) string
}
