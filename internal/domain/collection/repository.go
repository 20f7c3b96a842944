package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists the payment ledger and answers the aggregate
// queries the reconciliation service needs.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Collection, error)
	Insert(ctx context.Context, c *Collection) error
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumForOrder returns the total collected against one order
	SumForOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	// DuesByCounter aggregates outstanding balances per counter. The
	// collected amount is capped at each order's grand total before
	// summing, so over-collection on one order can never offset another.
	// Counters with zero total due are excluded. When month is non-nil,
	// MonthCollected additionally reports collections whose transaction
	// date falls inside that calendar month.
	DuesByCounter(ctx context.Context, representativeID *uuid.UUID, month *time.Time) ([]CounterDue, error)
}
