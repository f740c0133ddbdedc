package driven

import "context"

// MarkerHit is one marker document found by a store-wide search.
type MarkerHit struct {
	// FileID is the marker document's ID.
	FileID string

	// ParentID is the folder containing the marker.
	ParentID string
}

// FolderRef is folder metadata sufficient for the ancestor walk.
type FolderRef struct {
	// FolderID is the folder's ID.
	FolderID string

	// Name is the folder's display name.
	Name string

	// ParentID is the containing folder, empty at the root.
	ParentID string
}

// StoredFile is one entry from a folder listing.
type StoredFile struct {
	// FileID is the file's ID.
	FileID string

	// Name is the file's current name.
	Name string

	// MIMEType is the store-reported content type.
	MIMEType string

	// Size is the file size in bytes when known.
	Size int64
}

// DocumentStore is the hierarchical file store holding client folders.
// Backed by Google Drive in production and an in-memory tree in tests.
type DocumentStore interface {
	// FindMarkers searches the whole store for documents with the
	// given exact name.
	FindMarkers(ctx context.Context, name string) ([]MarkerHit, error)

	// Folder fetches metadata for one folder.
	// Unknown IDs yield domain.ErrNotFound.
	Folder(ctx context.Context, folderID string) (*FolderRef, error)

	// ListFolders returns the immediate subfolders of a folder.
	ListFolders(ctx context.Context, parentID string) ([]FolderRef, error)

	// ListFiles returns the immediate non-folder children of a folder.
	// A non-empty mimeType restricts the listing to that content type.
	ListFiles(ctx context.Context, parentID, mimeType string) ([]StoredFile, error)

	// ReadText fetches a document's content as text.
	ReadText(ctx context.Context, fileID string) (string, error)

	// Download fetches a file's raw bytes.
	Download(ctx context.Context, fileID string) ([]byte, error)

	// Rename changes a file's name in place.
	Rename(ctx context.Context, fileID, newName string) error
}
