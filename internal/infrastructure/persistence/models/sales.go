package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// OrderModel maps the order header
type OrderModel struct {
	BaseModel
	CounterID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time       `gorm:"not null;index"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountTotal   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CGSTTotal       decimal.Decimal `gorm:"column:cgst_total;type:numeric(14,2);not null"`
	SGSTTotal       decimal.Decimal `gorm:"column:sgst_total;type:numeric(14,2);not null"`
	GrandTotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentReceived bool            `gorm:"not null;default:false"`
	InvoiceFile     string          `gorm:"size:255"`
	Lines           []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName overrides the table name
func (OrderModel) TableName() string { return "orders" }

// OrderLineModel maps one order line
type OrderLineModel struct {
	BaseModel
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"size:255;not null"`
	Quantity        decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	FreeQuantity    decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Rate            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CGSTAmount      decimal.Decimal `gorm:"column:cgst_amount;type:numeric(14,2);not null"`
	SGSTAmount      decimal.Decimal `gorm:"column:sgst_amount;type:numeric(14,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName overrides the table name
func (OrderLineModel) TableName() string { return "order_lines" }

// ToDomain converts the model to a domain aggregate with its lines
func (m *OrderModel) ToDomain() *sales.Order {
	order := &sales.Order{
		BaseEntity:      baseEntity(m.BaseModel),
		CounterID:       m.CounterID,
		OrderDate:       m.OrderDate,
		Subtotal:        m.Subtotal,
		DiscountTotal:   m.DiscountTotal,
		CGSTTotal:       m.CGSTTotal,
		SGSTTotal:       m.SGSTTotal,
		GrandTotal:      m.GrandTotal,
		PaymentReceived: m.PaymentReceived,
		InvoiceFile:     m.InvoiceFile,
	}
	order.Lines = make([]sales.OrderLine, len(m.Lines))
	for i := range m.Lines {
		order.Lines[i] = *m.Lines[i].ToDomain()
	}
	return order
}

// ToDomain converts the line model to a domain line
func (m *OrderLineModel) ToDomain() *sales.OrderLine {
	return &sales.OrderLine{
		ID:              m.ID,
		OrderID:         m.OrderID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Quantity:        m.Quantity,
		FreeQuantity:    m.FreeQuantity,
		Rate:            m.Rate,
		DiscountPercent: m.DiscountPercent,
		DiscountAmount:  m.DiscountAmount,
		CGSTAmount:      m.CGSTAmount,
		SGSTAmount:      m.SGSTAmount,
		LineTotal:       m.LineTotal,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// OrderModelFromDomain converts a domain aggregate to the model,
// including its lines
func OrderModelFromDomain(o *sales.Order) *OrderModel {
	m := &OrderModel{
		BaseModel:       baseModel(o.BaseEntity),
		CounterID:       o.CounterID,
		OrderDate:       o.OrderDate,
		Subtotal:        o.Subtotal,
		DiscountTotal:   o.DiscountTotal,
		CGSTTotal:       o.CGSTTotal,
		SGSTTotal:       o.SGSTTotal,
		GrandTotal:      o.GrandTotal,
		PaymentReceived: o.PaymentReceived,
		InvoiceFile:     o.InvoiceFile,
	}
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = *OrderLineModelFromDomain(&o.Lines[i])
	}
	return m
}

// OrderLineModelFromDomain converts a domain line to the model
func OrderLineModelFromDomain(l *sales.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		BaseModel:       BaseModel{ID: l.ID, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt},
		OrderID:         l.OrderID,
		ProductID:       l.ProductID,
		ProductName:     l.ProductName,
		Quantity:        l.Quantity,
		FreeQuantity:    l.FreeQuantity,
		Rate:            l.Rate,
		DiscountPercent: l.DiscountPercent,
		DiscountAmount:  l.DiscountAmount,
		CGSTAmount:      l.CGSTAmount,
		SGSTAmount:      l.SGSTAmount,
		LineTotal:       l.LineTotal,
	}
}
