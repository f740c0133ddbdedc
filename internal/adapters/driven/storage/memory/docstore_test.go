package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.folders)
	assert.NotNil(t, store.files)
}

// TestDocumentStore_FindMarkers_InsertionOrder tests that marker hits come
// back in the order the files were added.
func TestDocumentStore_FindMarkers_InsertionOrder(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	root := store.AddFolder("", "Clients")
	a := store.AddFolder(root, "Client A")
	b := store.AddFolder(root, "Client B")
	markerA := store.AddFile(a, "dealsync.txt", "text/plain", []byte("111"))
	store.AddFile(a, "notes.txt", "text/plain", []byte("unrelated"))
	markerB := store.AddFile(b, "dealsync.txt", "text/plain", []byte("222"))

	hits, err := store.FindMarkers(ctx, "dealsync.txt")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, markerA, hits[0].FileID)
	assert.Equal(t, a, hits[0].ParentID)
	assert.Equal(t, markerB, hits[1].FileID)
	assert.Equal(t, b, hits[1].ParentID)
}

func TestDocumentStore_FindMarkers_NoMatch(t *testing.T) {
	store := NewDocumentStore()

	hits, err := store.FindMarkers(context.Background(), "dealsync.txt")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDocumentStore_Folder_Success(t *testing.T) {
	store := NewDocumentStore()
	root := store.AddFolder("", "Clients")
	child := store.AddFolder(root, "Client A")

	ref, err := store.Folder(context.Background(), child)
	require.NoError(t, err)
	assert.Equal(t, "Client A", ref.Name)
	assert.Equal(t, root, ref.ParentID)
}

func TestDocumentStore_Folder_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.Folder(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListFiles_MIMEFilter(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	folder := store.AddFolder("", "Client A")
	pdf := store.AddFile(folder, "contract.pdf", domain.MIMETypePDF, []byte("%PDF"))
	store.AddFile(folder, "notes.txt", "text/plain", []byte("n"))

	files, err := store.ListFiles(ctx, folder, domain.MIMETypePDF)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, pdf, files[0].FileID)

	all, err := store.ListFiles(ctx, folder, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDocumentStore_ListFolders(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	root := store.AddFolder("", "Clients")
	a := store.AddFolder(root, "Client A")
	b := store.AddFolder(root, "Client B")
	store.AddFolder(a, "Sub")

	subs, err := store.ListFolders(ctx, root)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, a, subs[0].FolderID)
	assert.Equal(t, b, subs[1].FolderID)
}

func TestDocumentStore_ReadText(t *testing.T) {
	store := NewDocumentStore()
	folder := store.AddFolder("", "Client A")
	marker := store.AddFile(folder, "dealsync.txt", "text/plain", []byte("  111\n"))

	content, err := store.ReadText(context.Background(), marker)
	require.NoError(t, err)
	assert.Equal(t, "  111\n", content)
}

func TestDocumentStore_Download_ReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	folder := store.AddFolder("", "Client A")
	file := store.AddFile(folder, "contract.pdf", domain.MIMETypePDF, []byte("%PDF-1.4"))

	data, err := store.Download(context.Background(), file)
	require.NoError(t, err)
	data[0] = 'X'

	again, err := store.Download(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), again)
}

func TestDocumentStore_Rename(t *testing.T) {
	store := NewDocumentStore()
	folder := store.AddFolder("", "Client A")
	file := store.AddFile(folder, "contract.pdf", domain.MIMETypePDF, []byte("%PDF"))

	err := store.Rename(context.Background(), file, "contract_UPLOADED.pdf")
	require.NoError(t, err)
	assert.Equal(t, "contract_UPLOADED.pdf", store.FileName(file))
}

func TestDocumentStore_Rename_NotFound(t *testing.T) {
	store := NewDocumentStore()

	err := store.Rename(context.Background(), "missing", "x.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
