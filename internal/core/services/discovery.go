package services

import (
	"context"
	"fmt"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// FolderDiscovery finds every client folder carrying a marker document
// and reconstructs its hierarchical path.
type FolderDiscovery struct {
	store driven.DocumentStore
}

// NewFolderDiscovery creates a new folder discovery service.
func NewFolderDiscovery(store driven.DocumentStore) *FolderDiscovery {
	return &FolderDiscovery{store: store}
}

// Discover searches the whole store for marker documents and returns one
// record per marker, in discovery order. Records are not deduplicated
// here; overlapping subtrees are resolved by ResolveOwnership.
//
// The ancestor walk behind each record is bounded by cfg.MaxDepth. A
// folder nested deeper has its path truncated to the deepest names and
// the record proceeds; only the marker search itself can fail the call.
func (d *FolderDiscovery) Discover(ctx context.Context, cfg domain.DiscoverySettings) ([]domain.FolderRecord, error) {
	hits, err := d.store.FindMarkers(ctx, cfg.MarkerFilename)
	if err != nil {
		return nil, fmt.Errorf("search markers: %w", err)
	}
	logger.Debug("Discovery found %d marker(s) named %q", len(hits), cfg.MarkerFilename)

	records := make([]domain.FolderRecord, 0, len(hits))
	for _, hit := range hits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := d.buildRecord(ctx, hit, cfg)
		if cfg.RootFolderID != "" && !rec.inScope {
			logger.Debug("Dropping %s: outside root folder %s", rec.record.PathString(), cfg.RootFolderID)
			continue
		}
		records = append(records, rec.record)
	}
	return records, nil
}

// discoveredRecord pairs a folder record with its root-scope verdict.
type discoveredRecord struct {
	record  domain.FolderRecord
	inScope bool
}

// buildRecord walks ancestors from the marker's parent folder to the
// root, assembling the path root-to-leaf. Walk failures degrade to a
// truncated path rather than dropping the folder: uploads only need the
// folder ID, the path is for reports and dedup.
func (d *FolderDiscovery) buildRecord(ctx context.Context, hit driven.MarkerHit, cfg domain.DiscoverySettings) discoveredRecord {
	rec := domain.FolderRecord{
		FolderID:     hit.ParentID,
		MarkerFileID: hit.FileID,
	}

	var names []string
	seenRoot := false
	current := hit.ParentID
	for depth := 0; current != ""; depth++ {
		if depth >= cfg.MaxDepth {
			rec.PathTruncated = true
			logger.Warn("Folder %s exceeds depth %d, truncating path", hit.ParentID, cfg.MaxDepth)
			break
		}
		if cfg.RootFolderID != "" && current == cfg.RootFolderID {
			seenRoot = true
		}
		ref, err := d.store.Folder(ctx, current)
		if err != nil {
			rec.PathTruncated = true
			logger.Warn("Folder walk for %s stopped at %s: %v", hit.ParentID, current, err)
			break
		}
		names = append([]string{ref.Name}, names...)
		current = ref.ParentID
	}

	rec.Path = names
	if len(names) > 0 {
		rec.DisplayName = names[len(names)-1]
	}

	// A truncated walk cannot prove scope membership, so a record whose
	// walk never reached the configured root counts as out of scope.
	return discoveredRecord{record: rec, inScope: cfg.RootFolderID == "" || seenRoot}
}
