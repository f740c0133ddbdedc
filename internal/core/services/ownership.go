package services

import (
	"fmt"
	"sort"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// NestedFolder is a discovered folder discarded because another,
// shallower folder already claims its subtree.
type NestedFolder struct {
	// Record is the discarded folder.
	Record domain.FolderRecord

	// Reason explains the discard for the skip report.
	Reason string
}

// ResolveOwnership decides which discovered folders are authoritative.
//
// Records are sorted by path depth, shallowest first, with discovery
// order breaking ties, then claimed one by one: a record nested under an
// already-claimed path is discarded, because the shallower folder's
// recursive file search already covers it. Unrelated siblings all
// survive. A second marker in an already-claimed folder is discarded as
// a duplicate. The result is deterministic for a given input order.
//
// A record whose ancestor walk was truncated has an untrustworthy path:
// it holds only the deepest segments, or nothing at all. Such records
// claim by folder ID only, never by path prefix, so a transient walk
// failure on one folder cannot swallow its siblings.
func ResolveOwnership(records []domain.FolderRecord) (authoritative []domain.FolderRecord, nested []NestedFolder) {
	ordered := make([]domain.FolderRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Depth() < ordered[j].Depth()
	})

	claimed := make(map[string]struct{})
	for _, rec := range ordered {
		if owner, ok := claimedAncestor(authoritative, rec); ok {
			nested = append(nested, NestedFolder{
				Record: rec,
				Reason: fmt.Sprintf("nested under %s", owner.PathString()),
			})
			continue
		}
		if _, dup := claimed[rec.FolderID]; dup {
			nested = append(nested, NestedFolder{
				Record: rec,
				Reason: fmt.Sprintf("duplicate marker in %s", rec.PathString()),
			})
			continue
		}
		claimed[rec.FolderID] = struct{}{}
		authoritative = append(authoritative, rec)
	}
	return authoritative, nested
}

// claimedAncestor returns the authoritative folder whose path is a
// proper prefix of rec's path, if any. Truncated-path owners are skipped:
// their prefix holds only the deepest segments and would match unrelated
// folders.
func claimedAncestor(authoritative []domain.FolderRecord, rec domain.FolderRecord) (domain.FolderRecord, bool) {
	for _, owner := range authoritative {
		if owner.PathTruncated {
			continue
		}
		if rec.IsDescendantOf(owner) {
			return owner, true
		}
	}
	return domain.FolderRecord{}, false
}
