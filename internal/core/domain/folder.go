package domain

import "strings"

// PathSeparator joins folder names when rendering a folder path.
const PathSeparator = "/"

// FolderRecord is a client folder discovered through its marker document.
type FolderRecord struct {
	// FolderID is the document store's ID for the folder.
	FolderID string

	// DisplayName is the folder's own name.
	DisplayName string

	// Path is the ancestor chain from root to this folder, inclusive.
	// It may be truncated when the ancestor walk exceeds the depth bound.
	Path []string

	// PathTruncated records that the ancestor walk hit the depth bound
	// and Path holds only the deepest segments.
	PathTruncated bool

	// MarkerFileID is the marker document found inside this folder.
	MarkerFileID string
}

// Depth is the number of path segments. Deeper folders have larger depths.
func (f FolderRecord) Depth() int {
	return len(f.Path)
}

// PathString renders the path for reports and audit rows.
func (f FolderRecord) PathString() string {
	s := strings.Join(f.Path, PathSeparator)
	if f.PathTruncated {
		return "…" + PathSeparator + s
	}
	return s
}

// IsDescendantOf reports whether f lies strictly beneath other, using a
// separator-aware prefix test so that "Root/Client A" does not claim
// "Root/Client AB". An owner with an empty path proves nothing about the
// hierarchy (its ancestor walk failed outright), so it claims no
// descendants.
func (f FolderRecord) IsDescendantOf(other FolderRecord) bool {
	if len(other.Path) == 0 {
		return false
	}
	if len(f.Path) <= len(other.Path) {
		return false
	}
	for i, seg := range other.Path {
		if f.Path[i] != seg {
			return false
		}
	}
	return true
}
