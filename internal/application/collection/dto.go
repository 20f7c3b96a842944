package collection

import (
	"time"

	"github.com/pharmadist/backend/internal/domain/collection"
)

// AddCollectionRequest is the payload for recording a payment against
// an order
type AddCollectionRequest struct {
	OrderID         string  `json:"order_id" binding:"required,uuid"`
	Amount          float64 `json:"amount" binding:"required"`
	TransactionDate string  `json:"transaction_date" binding:"omitempty,dateformat"`
	Comment         string  `json:"comment"`
	// MarkAsPaid forces the order's paid flag regardless of the balance,
	// used for manual write-offs at payment time
	MarkAsPaid bool `json:"mark_as_paid"`
}

// UpdateCollectionRequest is the payload for editing a ledger entry
type UpdateCollectionRequest struct {
	Amount          float64 `json:"amount" binding:"required"`
	TransactionDate string  `json:"transaction_date" binding:"omitempty,dateformat"`
	Comment         string  `json:"comment"`
}

// CollectionResponse is one rendered ledger entry
type CollectionResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	Amount          string    `json:"amount"`
	TransactionDate string    `json:"transaction_date"`
	Comment         string    `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// LedgerResponse reports the effect of a ledger mutation on its order
type LedgerResponse struct {
	Collection       *CollectionResponse `json:"collection,omitempty"`
	TotalCollected   string              `json:"total_collected"`
	RemainingBalance string              `json:"remaining_balance"`
	PaymentReceived  bool                `json:"payment_received"`
	PaidFlagChanged  bool                `json:"paid_flag_changed"`
}

// OrderLedgerResponse lists an order's full ledger with its balance
type OrderLedgerResponse struct {
	OrderID          string               `json:"order_id"`
	GrandTotal       string               `json:"grand_total"`
	TotalCollected   string               `json:"total_collected"`
	RemainingBalance string               `json:"remaining_balance"`
	PaymentReceived  bool                 `json:"payment_received"`
	Collections      []CollectionResponse `json:"collections"`
}

// CounterDueResponse is one row of the dues report
type CounterDueResponse struct {
	CounterID        string `json:"counter_id"`
	CounterName      string `json:"counter_name"`
	City             string `json:"city,omitempty"`
	RepresentativeID string `json:"representative_id,omitempty"`
	TotalOrders      string `json:"total_orders"`
	TotalCollected   string `json:"total_collected"`
	Due              string `json:"due"`
	MonthCollected   string `json:"month_collected,omitempty"`
}

// DuesResponse is the dues report with its grand total
type DuesResponse struct {
	Dues     []CounterDueResponse `json:"dues"`
	TotalDue string               `json:"total_due"`
}

func toCollectionResponse(c *collection.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:              c.ID.String(),
		OrderID:         c.OrderID.String(),
		Amount:          c.Amount.String(),
		TransactionDate: c.TransactionDate.Format("2006-01-02"),
		Comment:         c.Comment,
		CreatedAt:       c.CreatedAt,
	}
}
