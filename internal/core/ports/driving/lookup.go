package driving

import (
	"context"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// LookupStats describes the state of the identifier lookup cache.
type LookupStats struct {
	// Entries is the number of identifiers in the current snapshot.
	Entries int

	// RefreshedAt is when the snapshot was built. Zero if never refreshed.
	RefreshedAt time.Time

	// Stale indicates the snapshot is older than the configured maximum age.
	Stale bool
}

// LookupService maintains a cache of folder identifiers so that single-upload
// runs can find the owning folder without walking the whole tree.
type LookupService interface {
	// Refresh rebuilds the cache from the document store.
	Refresh(ctx context.Context) error

	// FolderFor returns the folder owning the given identifier, refreshing
	// the cache first when it is stale or empty. Returns
	// domain.ErrNoFolderForIdentifier when no folder carries it.
	FolderFor(ctx context.Context, id domain.Identifier) (*domain.FolderRecord, error)

	// Stats reports the current cache state.
	Stats() LookupStats
}
