package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFolderRecord_Depth tests depth counting
func TestFolderRecord_Depth(t *testing.T) {
	f := FolderRecord{Path: []string{"Root", "Clients", "Smith"}}

	assert.Equal(t, 3, f.Depth())
}

// TestFolderRecord_PathString tests path rendering
func TestFolderRecord_PathString(t *testing.T) {
	f := FolderRecord{Path: []string{"Root", "Clients", "Smith"}}

	assert.Equal(t, "Root/Clients/Smith", f.PathString())
}

// TestFolderRecord_PathString_Truncated tests the truncation marker
func TestFolderRecord_PathString_Truncated(t *testing.T) {
	f := FolderRecord{Path: []string{"Deep", "Leaf"}, PathTruncated: true}

	assert.Equal(t, "…/Deep/Leaf", f.PathString())
}

// TestFolderRecord_IsDescendantOf tests the subtree check
func TestFolderRecord_IsDescendantOf(t *testing.T) {
	parent := FolderRecord{Path: []string{"Root", "ClientA"}}
	child := FolderRecord{Path: []string{"Root", "ClientA", "Sub"}}

	assert.True(t, child.IsDescendantOf(parent))
	assert.False(t, parent.IsDescendantOf(child))
	assert.False(t, parent.IsDescendantOf(parent))
}

// TestFolderRecord_IsDescendantOf_EmptyOwnerPath tests that a folder
// with no path segments claims no descendants.
func TestFolderRecord_IsDescendantOf_EmptyOwnerPath(t *testing.T) {
	empty := FolderRecord{FolderID: "broken"}
	other := FolderRecord{Path: []string{"Root", "ClientA"}}

	assert.False(t, other.IsDescendantOf(empty))
	assert.False(t, empty.IsDescendantOf(other))
}

// TestFolderRecord_IsDescendantOf_NamePrefix tests that sibling folders
// sharing a name prefix are not treated as nested
func TestFolderRecord_IsDescendantOf_NamePrefix(t *testing.T) {
	a := FolderRecord{Path: []string{"Root", "Client A"}}
	ab := FolderRecord{Path: []string{"Root", "Client AB"}}

	assert.False(t, ab.IsDescendantOf(a))
	assert.False(t, a.IsDescendantOf(ab))
}
