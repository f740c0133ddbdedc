package domain

import (
	"strconv"
	"strings"
)

// IdentifierKind classifies the content of a marker document.
type IdentifierKind string

// Available identifier kinds.
const (
	// IdentifierNone means the marker was blank or unparseable.
	// Folders with an absent identifier are skipped, never failed.
	IdentifierNone IdentifierKind = "none"

	// IdentifierID is a numeric transaction ID.
	IdentifierID IdentifierKind = "id"

	// IdentifierEmail is a client email address.
	IdentifierEmail IdentifierKind = "email"
)

// Identifier is the parsed content of a marker document. It selects
// which transactions a client folder's documents are uploaded to.
type Identifier struct {
	// Kind classifies the identifier.
	Kind IdentifierKind

	// ID is the transaction ID when Kind is IdentifierID.
	ID TransactionID

	// Email is the lower-cased client email when Kind is IdentifierEmail.
	Email string
}

// ParseIdentifier interprets raw marker content. Surrounding whitespace is
// trimmed first. All-digit content parses as a transaction ID; content with
// an "@" followed by a dot parses as an email (lower-cased). Anything else,
// including blank content, yields an absent identifier.
func ParseIdentifier(raw string) Identifier {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identifier{Kind: IdentifierNone}
	}

	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil && id > 0 {
		return Identifier{Kind: IdentifierID, ID: TransactionID(id)}
	}

	if isEmail(trimmed) {
		return Identifier{Kind: IdentifierEmail, Email: strings.ToLower(trimmed)}
	}

	return Identifier{Kind: IdentifierNone}
}

// isEmail applies the minimal shape check used for marker content:
// a single "@" with a dot somewhere after it, and no whitespace.
func isEmail(s string) bool {
	if strings.ContainsAny(s, " \t") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	rest := s[at+1:]
	dot := strings.Index(rest, ".")
	return dot > 0 && dot < len(rest)-1
}

// IsAbsent returns true if the marker held no usable identifier.
func (i Identifier) IsAbsent() bool {
	return i.Kind == IdentifierNone
}

// Key returns the normalised cache key for this identifier: the decimal
// ID for numeric identifiers, the lower-cased address for emails, and
// the empty string for absent identifiers.
func (i Identifier) Key() string {
	switch i.Kind {
	case IdentifierID:
		return strconv.FormatInt(int64(i.ID), 10)
	case IdentifierEmail:
		return i.Email
	default:
		return ""
	}
}

// String returns a human-readable form for logs and audit rows.
func (i Identifier) String() string {
	switch i.Kind {
	case IdentifierID:
		return "id:" + strconv.FormatInt(int64(i.ID), 10)
	case IdentifierEmail:
		return "email:" + i.Email
	default:
		return "(absent)"
	}
}
