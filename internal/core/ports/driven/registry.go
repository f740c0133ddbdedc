package driven

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// TransactionRegistry is the external platform holding transactions.
//
// Resolve distinguishes two failure shapes: a definitive "no such
// transaction" answer surfaces as domain.ErrNotFound and is never
// retried, while transport and server failures surface as other errors
// and are retried by the resolver service.
type TransactionRegistry interface {
	// Resolve returns the transactions matching an identifier,
	// unfiltered by status. Email identifiers may match several.
	Resolve(ctx context.Context, id domain.Identifier) ([]domain.TransactionRecord, error)

	// SubmitDocument uploads one file to one transaction.
	SubmitDocument(ctx context.Context, txID domain.TransactionID, filename, contentType string, content []byte) error
}
