package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/storage/memory"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// TestMarkerReader_Read_NumericID tests parsing a transaction id marker.
func TestMarkerReader_Read_NumericID(t *testing.T) {
	store := memory.NewDocumentStore()
	folder := store.AddFolder("", "Client A")
	marker := store.AddFile(folder, "dealsync.txt", "text/plain", []byte("  111\n"))

	reader := NewMarkerReader(store)
	id, err := reader.Read(context.Background(), marker)

	require.NoError(t, err)
	assert.Equal(t, domain.IdentifierID, id.Kind)
	assert.Equal(t, domain.TransactionID(111), id.ID)
}

// TestMarkerReader_Read_Email tests that emails are lower-cased.
func TestMarkerReader_Read_Email(t *testing.T) {
	store := memory.NewDocumentStore()
	folder := store.AddFolder("", "Client B")
	marker := store.AddFile(folder, "dealsync.txt", "text/plain", []byte("Jane.Doe@Example.COM"))

	reader := NewMarkerReader(store)
	id, err := reader.Read(context.Background(), marker)

	require.NoError(t, err)
	assert.Equal(t, domain.IdentifierEmail, id.Kind)
	assert.Equal(t, "jane.doe@example.com", id.Email)
}

// TestMarkerReader_Read_Empty tests that a blank marker is absent, not
// an error.
func TestMarkerReader_Read_Empty(t *testing.T) {
	store := memory.NewDocumentStore()
	folder := store.AddFolder("", "Client C")
	marker := store.AddFile(folder, "dealsync.txt", "text/plain", []byte("   \n\t"))

	reader := NewMarkerReader(store)
	id, err := reader.Read(context.Background(), marker)

	require.NoError(t, err)
	assert.True(t, id.IsAbsent())
}

// TestMarkerReader_Read_Unparseable tests that garbage content is
// absent, not an error.
func TestMarkerReader_Read_Unparseable(t *testing.T) {
	store := memory.NewDocumentStore()
	folder := store.AddFolder("", "Client D")
	marker := store.AddFile(folder, "dealsync.txt", "text/plain", []byte("see front desk"))

	reader := NewMarkerReader(store)
	id, err := reader.Read(context.Background(), marker)

	require.NoError(t, err)
	assert.True(t, id.IsAbsent())
}

// TestMarkerReader_Read_StoreFailure tests that a store failure is an
// error, distinct from an absent identifier.
func TestMarkerReader_Read_StoreFailure(t *testing.T) {
	store := memory.NewDocumentStore()

	reader := NewMarkerReader(store)
	_, err := reader.Read(context.Background(), "missing-marker")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
