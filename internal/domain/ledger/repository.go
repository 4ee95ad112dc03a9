package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
)

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	shared.Filter
	Kind *Kind
	From *time.Time
	To   *time.Time
}

// TransactionRepository defines the interface for ledger persistence
type TransactionRepository interface {
	// FindByIDForUser finds a transaction by ID for a specific user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)

	// FindAllForUser returns every transaction of a user, unfiltered by date
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error)

	// ListForUser returns a filtered, paginated listing and the total count
	ListForUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]Transaction, int64, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, tx *Transaction) error

	// DeleteForUser deletes a transaction owned by the user
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
