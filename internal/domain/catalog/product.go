package catalog

import (
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents an item from the product catalog. The catalog is
// maintained by the master-data subsystem; stock is the one field this
// core mutates (decremented when an order is created).
type Product struct {
	shared.BaseEntity
	Name         string
	Pack         string
	Manufacturer string
	Stock        decimal.Decimal
	CostBasis    decimal.Decimal
	GSTPercent   decimal.Decimal
}

// HasStock reports whether at least qty units are on hand.
func (p *Product) HasStock(qty decimal.Decimal) bool {
	return p.Stock.GreaterThanOrEqual(qty)
}
