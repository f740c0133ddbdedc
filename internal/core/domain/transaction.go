package domain

import "strconv"

// TransactionID identifies a transaction in the registry.
type TransactionID int64

// String returns the decimal form.
func (id TransactionID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Role is the client's side in a transaction.
type Role string

// Available roles.
const (
	// RoleBuyer marks the client as the buying party.
	RoleBuyer Role = "buyer"

	// RoleSeller marks the client as the selling party.
	RoleSeller Role = "seller"

	// RoleUnknown is used when the registry reports no recognised role.
	RoleUnknown Role = "unknown"
)

// ParseRole maps a registry role string onto a known role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleBuyer, RoleSeller:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// TransactionRecord is a transaction resolved from the registry.
type TransactionRecord struct {
	// ID is the registry's transaction ID.
	ID TransactionID

	// Role is the client's side in this transaction.
	Role Role

	// PropertyAddress is the human-readable address of the property.
	PropertyAddress string

	// Status is the registry's lifecycle status string.
	Status Status
}

// Resolution is the outcome of resolving an identifier against the registry.
// A definitive "no such transaction" answer is a valid resolution with
// Found false; transient failures surface as errors instead.
type Resolution struct {
	// Identifier is the identifier that was resolved.
	Identifier Identifier

	// Found is false when the registry definitively knows no matching
	// active transaction.
	Found bool

	// Reason explains a not-found resolution for reports.
	Reason string

	// Transactions holds the matching transactions that passed the
	// status filter. Email identifiers may match several.
	Transactions []TransactionRecord

	// MultiTransaction is set when more than one transaction matched.
	MultiTransaction bool
}

// First returns the first resolved transaction, which carries the
// property address shown in single-identifier reports.
func (r Resolution) First() (TransactionRecord, bool) {
	if len(r.Transactions) == 0 {
		return TransactionRecord{}, false
	}
	return r.Transactions[0], true
}
