package invoice

import (
	"time"

	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Document is the fully resolved data an invoice is rendered from.
// Amounts are carried as already-computed decimals; the renderer never
// recomputes arithmetic, it only formats what the order recorded.
type Document struct {
	InvoiceNumber string
	OrderDate     time.Time

	CounterName    string
	CounterAddress string
	CounterCity    string
	CounterPhone   string
	CounterGSTIN   string

	Lines []DocumentLine

	Subtotal       decimal.Decimal
	DiscountTotal  decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGSTTotal      decimal.Decimal
	SGSTTotal      decimal.Decimal
	TotalFreeUnits decimal.Decimal
	GrandTotal     decimal.Decimal
	AmountWords    string
}

// DocumentLine is one rendered invoice row
type DocumentLine struct {
	Serial          int
	ProductName     string
	Quantity        decimal.Decimal
	FreeQuantity    decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	CGSTAmount      decimal.Decimal
	SGSTAmount      decimal.Decimal
	LineTotal       decimal.Decimal
}

// HasFree reports whether the line carries promotional units, shown as
// a "+N Free" marker next to the quantity
func (l DocumentLine) HasFree() bool {
	return l.FreeQuantity.IsPositive()
}

// BuildDocument assembles an invoice document from an order and its
// counter. The persisted per-line discount amounts are used as-is.
func BuildDocument(order *sales.Order, counter *catalog.Counter) *Document {
	doc := &Document{
		InvoiceNumber:  shortID(order.ID.String()),
		OrderDate:      order.OrderDate,
		CounterName:    counter.Name,
		CounterAddress: counter.Address,
		CounterCity:    counter.City,
		CounterPhone:   counter.Phone,
		CounterGSTIN:   counter.GSTIN,
		Subtotal:       order.Subtotal,
		DiscountTotal:  order.DiscountTotal,
		TaxableAmount:  order.TaxableAmount(),
		CGSTTotal:      order.CGSTTotal,
		SGSTTotal:      order.SGSTTotal,
		TotalFreeUnits: order.TotalFreeQuantity(),
		GrandTotal:     order.GrandTotal,
		AmountWords:    AmountInWords(order.GrandTotal),
	}

	doc.Lines = make([]DocumentLine, len(order.Lines))
	for i, line := range order.Lines {
		doc.Lines[i] = DocumentLine{
			Serial:          i + 1,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			FreeQuantity:    line.FreeQuantity,
			Rate:            line.Rate,
			DiscountPercent: line.DiscountPercent,
			DiscountAmount:  line.DiscountAmount,
			CGSTAmount:      line.CGSTAmount,
			SGSTAmount:      line.SGSTAmount,
			LineTotal:       line.LineTotal,
		}
	}
	return doc
}

// shortID keeps the first UUID block as a human-readable invoice number
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
