package domain

// Status is a transaction lifecycle status as reported by the registry.
type Status string

// Registry status values used by the default filter.
const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusInactive  Status = "inactive"
	StatusClosed    Status = "closed"
	StatusWithdrawn Status = "withdrawn"
	StatusLost      Status = "lost"
	StatusExpired   Status = "expired"
)

// StatusFilter decides which resolved transactions receive uploads.
// The zero value accepts nothing; construct via DefaultStatusFilter
// or AllStatuses.
type StatusFilter struct {
	// AllowAll accepts every status, including terminal ones.
	AllowAll bool

	excluded map[Status]struct{}
}

// DefaultStatusFilter excludes transactions in a terminal or dormant
// state. Everything else is accepted.
func DefaultStatusFilter() StatusFilter {
	return StatusFilter{
		excluded: map[Status]struct{}{
			StatusInactive:  {},
			StatusClosed:    {},
			StatusWithdrawn: {},
			StatusLost:      {},
			StatusExpired:   {},
		},
	}
}

// AllStatuses accepts every transaction regardless of status.
func AllStatuses() StatusFilter {
	return StatusFilter{AllowAll: true}
}

// Accepts reports whether a transaction with the given status should
// receive uploads.
func (f StatusFilter) Accepts(s Status) bool {
	if f.AllowAll {
		return true
	}
	_, excluded := f.excluded[s]
	return !excluded
}

// Apply returns the transactions that pass the filter, preserving order.
func (f StatusFilter) Apply(txs []TransactionRecord) []TransactionRecord {
	if f.AllowAll {
		return txs
	}
	kept := make([]TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		if f.Accepts(tx.Status) {
			kept = append(kept, tx)
		}
	}
	return kept
}
