package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CounterRepository provides read-only access to counter master data
type CounterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Counter, error)
}

// ProductRepository provides access to product master data. Stock is the
// only field the sales core writes, and only through DecrementStock.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// DecrementStock atomically reduces the product's stock by qty,
	// flooring at zero. It is a single conditional UPDATE so concurrent
	// order creations cannot produce a lost update or a negative stock.
	// Returns the stock level after the decrement.
	DecrementStock(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (decimal.Decimal, error)
}
