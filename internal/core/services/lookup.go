package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// Ensure LookupCache implements the interface.
var _ driving.LookupService = (*LookupCache)(nil)

// LookupCache maps normalised identifiers to their authoritative folders
// so single-identifier runs skip the full tree walk.
//
// Refresh builds a complete new snapshot and swaps it in under the lock;
// the current snapshot is never mutated in place, so lookups racing a
// refresh read a consistent map.
type LookupCache struct {
	discovery *FolderDiscovery
	reader    *MarkerReader
	settings  driving.SettingsService

	mu          sync.RWMutex
	snapshot    map[string]domain.FolderRecord
	refreshedAt time.Time

	now func() time.Time
}

// NewLookupCache creates a new lookup cache.
func NewLookupCache(discovery *FolderDiscovery, reader *MarkerReader, settings driving.SettingsService) *LookupCache {
	return &LookupCache{
		discovery: discovery,
		reader:    reader,
		settings:  settings,
		now:       time.Now,
	}
}

// Refresh rebuilds the cache: discovery, ownership resolution, then one
// marker read per authoritative folder. When several folders carry the
// same identifier the first in discovery order wins, matching the order
// batch runs process folders in.
func (c *LookupCache) Refresh(ctx context.Context) error {
	cfg, err := c.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	records, err := c.discovery.Discover(ctx, cfg.Discovery)
	if err != nil {
		return fmt.Errorf("refresh lookup cache: %w", err)
	}
	authoritative, _ := ResolveOwnership(records)

	snapshot := make(map[string]domain.FolderRecord, len(authoritative))
	for _, rec := range authoritative {
		id, err := c.reader.Read(ctx, rec.MarkerFileID)
		if err != nil {
			logger.Warn("Lookup refresh: %v", err)
			continue
		}
		key := id.Key()
		if key == "" {
			continue
		}
		if _, dup := snapshot[key]; dup {
			logger.Warn("Identifier %s appears in several folders, keeping the first", id)
			continue
		}
		snapshot[key] = rec
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.refreshedAt = c.now()
	c.mu.Unlock()
	logger.Debug("Lookup cache refreshed: %d identifier(s)", len(snapshot))
	return nil
}

// FolderFor returns the folder owning the identifier, refreshing the
// cache first when it is empty or older than the configured maximum age.
func (c *LookupCache) FolderFor(ctx context.Context, id domain.Identifier) (*domain.FolderRecord, error) {
	if id.IsAbsent() {
		return nil, fmt.Errorf("lookup: %w", domain.ErrInvalidInput)
	}

	maxAge := c.maxAge()
	c.mu.RLock()
	snapshot := c.snapshot
	refreshedAt := c.refreshedAt
	c.mu.RUnlock()

	if snapshot == nil || c.now().Sub(refreshedAt) > maxAge {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
		snapshot = c.snapshot
		c.mu.RUnlock()
	}

	rec, ok := snapshot[id.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoFolderForIdentifier, id)
	}
	return &rec, nil
}

// Stats reports the current cache state.
func (c *LookupCache) Stats() driving.LookupStats {
	maxAge := c.maxAge()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return driving.LookupStats{
		Entries:     len(c.snapshot),
		RefreshedAt: c.refreshedAt,
		Stale:       c.refreshedAt.IsZero() || c.now().Sub(c.refreshedAt) > maxAge,
	}
}

func (c *LookupCache) maxAge() time.Duration {
	cfg, err := c.settings.Get()
	if err != nil {
		return domain.DefaultAppSettings().Lookup.MaxAge
	}
	return cfg.Lookup.MaxAge
}
