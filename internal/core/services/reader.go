package services

import (
	"context"
	"fmt"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// MarkerReader reads the identifier out of a marker document.
type MarkerReader struct {
	store driven.DocumentStore
}

// NewMarkerReader creates a new marker reader.
func NewMarkerReader(store driven.DocumentStore) *MarkerReader {
	return &MarkerReader{store: store}
}

// Read fetches a marker document and parses its content into an
// identifier. Blank or unrecognisable content yields an absent
// identifier, not an error; only a store read failure is an error.
func (r *MarkerReader) Read(ctx context.Context, markerFileID string) (domain.Identifier, error) {
	content, err := r.store.ReadText(ctx, markerFileID)
	if err != nil {
		return domain.Identifier{}, fmt.Errorf("read marker %s: %w", markerFileID, err)
	}
	return domain.ParseIdentifier(content), nil
}
