package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/shared"
)

// OrderRepository persists orders together with their lines. Save and
// ReplaceLines run inside a single transaction so a mid-sequence failure
// never leaves an order with a partial line set.
type OrderRepository interface {
	// FindByID loads the order with its lines preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save writes the order header and all its lines atomically
	Save(ctx context.Context, order *Order) error
	// UpdateHeader overwrites the header fields (totals, date, flags)
	// without touching the lines
	UpdateHeader(ctx context.Context, order *Order) error
	// ReplaceLines deletes every existing line for the order and inserts
	// the given set, then persists the recomputed header totals, all in
	// one transaction
	ReplaceLines(ctx context.Context, order *Order) error
	// SetInvoiceFile records the invoice document reference
	SetInvoiceFile(ctx context.Context, id uuid.UUID, fileName string) error
	// SetPaymentReceived updates only the paid flag
	SetPaymentReceived(ctx context.Context, id uuid.UUID, paid bool) error
	// Delete removes the order and cascades to its lines
	Delete(ctx context.Context, id uuid.UUID) error
}
