package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Collection is one payment-ledger entry recorded against an order.
// Entries are append-only; edits and deletes go through operations that
// re-derive the order's paid flag from the full remaining ledger.
type Collection struct {
	shared.BaseEntity
	OrderID         uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Comment         string
}

// NewCollection validates and creates a ledger entry. remaining is the
// order's outstanding balance (grand total minus what is already
// collected, floored at zero).
func NewCollection(orderID uuid.UUID, amount decimal.Decimal, txDate time.Time, comment string, remaining decimal.Decimal) (*Collection, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Collection must reference an order")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Collection amount must be positive")
	}
	if amount.GreaterThan(remaining) {
		return nil, shared.ErrOverCollection
	}
	if txDate.IsZero() {
		txDate = time.Now()
	}

	return &Collection{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         orderID,
		Amount:          amount,
		TransactionDate: txDate,
		Comment:         comment,
	}, nil
}

// RemainingBalance computes an order's outstanding balance from its grand
// total and the sum already collected, floored at zero for orders that
// are already fully (or over) collected.
func RemainingBalance(grandTotal, collected decimal.Decimal) decimal.Decimal {
	remaining := grandTotal.Sub(collected)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsSettled reports whether the collected sum covers the grand total.
// The order's paid flag is always exactly this predicate unless a manual
// write-off override forced it.
func IsSettled(grandTotal, collected decimal.Decimal) bool {
	return collected.GreaterThanOrEqual(grandTotal)
}

// CounterDue is one row of the dues aggregation: a counter's order
// totals, the collected amount capped per-order, and the outstanding due.
type CounterDue struct {
	CounterID        uuid.UUID
	CounterName      string
	City             string
	RepresentativeID *uuid.UUID
	TotalOrders      decimal.Decimal
	TotalCollected   decimal.Decimal
	Due              decimal.Decimal
	MonthCollected   decimal.Decimal
}
