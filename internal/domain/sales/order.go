package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LineInput carries the raw numeric fields for one order line as supplied
// by the caller. Non-finite values are normalized to 0; an explicit 0 is
// preserved (free-goods lines legitimately carry a zero rate).
type LineInput struct {
	ProductID       uuid.UUID
	ProductName     string
	Quantity        float64
	FreeQuantity    float64
	Rate            float64
	DiscountPercent float64
	CGSTAmount      float64
	SGSTAmount      float64
}

// OrderLine represents one product entry within an order
type OrderLine struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	FreeQuantity    decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	CGSTAmount      decimal.Decimal
	SGSTAmount      decimal.Decimal
	LineTotal       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrderLine builds a line from raw input, applying the whole-rupee
// discount arithmetic:
//
//	lineSubtotal   = round(quantity × rate)
//	discountAmount = round(lineSubtotal × discountPercent / 100)
//
// Rounding happens twice, once on the subtotal and once on the discount,
// matching the printed invoice figures exactly.
func NewOrderLine(orderID uuid.UUID, in LineInput) (*OrderLine, error) {
	if in.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Order line must reference a product")
	}

	qty := decimal.NewFromFloat(valueobject.SanitizeFloat(in.Quantity))
	free := decimal.NewFromFloat(valueobject.SanitizeFloat(in.FreeQuantity))
	rate := decimal.NewFromFloat(valueobject.SanitizeFloat(in.Rate))
	pct := decimal.NewFromFloat(valueobject.SanitizeFloat(in.DiscountPercent))
	cgst := decimal.NewFromFloat(valueobject.SanitizeFloat(in.CGSTAmount))
	sgst := decimal.NewFromFloat(valueobject.SanitizeFloat(in.SGSTAmount))

	lineSubtotal := valueobject.RoundRupee(qty.Mul(rate))
	discount := valueobject.RoundRupee(lineSubtotal.Mul(pct).Div(decimal.NewFromInt(100)))
	lineTotal := valueobject.RoundRupee(lineSubtotal.Sub(discount).Add(cgst).Add(sgst))

	now := time.Now()
	return &OrderLine{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       in.ProductID,
		ProductName:     in.ProductName,
		Quantity:        qty,
		FreeQuantity:    free,
		Rate:            rate,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		CGSTAmount:      cgst,
		SGSTAmount:      sgst,
		LineTotal:       lineTotal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Subtotal returns the rounded pre-discount line value
func (l *OrderLine) Subtotal() decimal.Decimal {
	return valueobject.RoundRupee(l.Quantity.Mul(l.Rate))
}

// ConsumedUnits returns the stock units this line consumes, paid plus free
func (l *OrderLine) ConsumedUnits() decimal.Decimal {
	return l.Quantity.Add(l.FreeQuantity)
}

// Order represents a counter's order aggregate root. An order and its
// lines are created together; an update replaces the entire line set.
type Order struct {
	shared.BaseEntity
	CounterID       uuid.UUID
	OrderDate       time.Time
	Subtotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	CGSTTotal       decimal.Decimal
	SGSTTotal       decimal.Decimal
	GrandTotal      decimal.Decimal
	PaymentReceived bool
	InvoiceFile     string
	Lines           []OrderLine
}

// HeaderInput carries the order-level totals supplied by the caller.
// Subtotal and the two tax totals are taken as given; DiscountTotal and
// GrandTotal are recomputed from the lines.
type HeaderInput struct {
	Subtotal  float64
	CGSTTotal float64
	SGSTTotal float64
}

// NewOrder creates an order with its full line set. The order date
// defaults to today when zero.
func NewOrder(counterID uuid.UUID, orderDate time.Time, header HeaderInput, lines []LineInput) (*Order, error) {
	if counterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTER", "Counter ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_LINES", "Order must contain at least one line")
	}
	if orderDate.IsZero() {
		orderDate = time.Now().Truncate(24 * time.Hour)
	}

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		CounterID:  counterID,
		OrderDate:  orderDate,
		Subtotal:   decimal.NewFromFloat(valueobject.SanitizeFloat(header.Subtotal)),
		CGSTTotal:  decimal.NewFromFloat(valueobject.SanitizeFloat(header.CGSTTotal)),
		SGSTTotal:  decimal.NewFromFloat(valueobject.SanitizeFloat(header.SGSTTotal)),
	}

	if err := order.buildLines(lines); err != nil {
		return nil, err
	}
	order.RecalculateTotals()
	return order, nil
}

// ReplaceLines discards all existing lines, rebuilds them from input with
// the same per-line arithmetic as creation, and recomputes the totals.
func (o *Order) ReplaceLines(lines []LineInput) error {
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_LINES", "Replacement line set cannot be empty")
	}
	o.Lines = nil
	if err := o.buildLines(lines); err != nil {
		return err
	}
	o.RecalculateTotals()
	o.Touch()
	return nil
}

func (o *Order) buildLines(lines []LineInput) error {
	o.Lines = make([]OrderLine, 0, len(lines))
	for _, in := range lines {
		line, err := NewOrderLine(o.ID, in)
		if err != nil {
			return err
		}
		o.Lines = append(o.Lines, *line)
	}
	return nil
}

// RecalculateTotals derives DiscountTotal from the persisted line
// discounts and GrandTotal from the header invariant:
//
//	grandTotal = round((subtotal − discountTotal) + cgst + sgst)
func (o *Order) RecalculateTotals() {
	discount := decimal.Zero
	for _, line := range o.Lines {
		discount = discount.Add(line.DiscountAmount)
	}
	o.DiscountTotal = discount
	o.GrandTotal = valueobject.RoundRupee(
		o.Subtotal.Sub(o.DiscountTotal).Add(o.CGSTTotal).Add(o.SGSTTotal))
}

// ApplyHeaderDiscountHeuristic estimates the discount total from header
// fields alone: discount ≈ max(0, round((subtotal + tax) − grandTotal)).
// Used when an update supplies no line detail, so there is nothing to
// recompute from. This is an approximation, not a recomputation.
func (o *Order) ApplyHeaderDiscountHeuristic() {
	est := valueobject.RoundRupee(
		o.Subtotal.Add(o.CGSTTotal).Add(o.SGSTTotal).Sub(o.GrandTotal))
	if est.IsNegative() {
		est = decimal.Zero
	}
	o.DiscountTotal = est
}

// ConsumedByProduct aggregates the stock units consumed per product,
// paid quantity plus free quantity, across all lines.
func (o *Order) ConsumedByProduct() map[uuid.UUID]decimal.Decimal {
	consumed := make(map[uuid.UUID]decimal.Decimal, len(o.Lines))
	for _, line := range o.Lines {
		consumed[line.ProductID] = consumed[line.ProductID].Add(line.ConsumedUnits())
	}
	return consumed
}

// SetInvoiceFile records the generated invoice document reference
func (o *Order) SetInvoiceFile(fileName string) {
	o.InvoiceFile = fileName
	o.Touch()
}

// SetPaymentReceived sets the paid flag
func (o *Order) SetPaymentReceived(paid bool) {
	o.PaymentReceived = paid
	o.Touch()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of paid quantities across all lines
func (o *Order) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Quantity)
	}
	return total
}

// TotalFreeQuantity returns the sum of free (promotional) units
func (o *Order) TotalFreeQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.FreeQuantity)
	}
	return total
}

// TaxableAmount returns subtotal minus discount, the base both GST
// components are levied on
func (o *Order) TaxableAmount() decimal.Decimal {
	return o.Subtotal.Sub(o.DiscountTotal)
}
