package models

import (
	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CounterModel maps counter master data
type CounterModel struct {
	BaseModel
	Name             string     `gorm:"size:255;not null;index"`
	Address          string     `gorm:"size:500"`
	City             string     `gorm:"size:100;index"`
	Phone            string     `gorm:"size:20"`
	GSTIN            string     `gorm:"column:gstin;size:15"`
	RepresentativeID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides the table name
func (CounterModel) TableName() string { return "counters" }

// ToDomain converts the model to a domain entity
func (m *CounterModel) ToDomain() *catalog.Counter {
	return &catalog.Counter{
		BaseEntity:       baseEntity(m.BaseModel),
		Name:             m.Name,
		Address:          m.Address,
		City:             m.City,
		Phone:            m.Phone,
		GSTIN:            m.GSTIN,
		RepresentativeID: m.RepresentativeID,
	}
}

// CounterModelFromDomain converts a domain entity to the model
func CounterModelFromDomain(c *catalog.Counter) *CounterModel {
	return &CounterModel{
		BaseModel:        baseModel(c.BaseEntity),
		Name:             c.Name,
		Address:          c.Address,
		City:             c.City,
		Phone:            c.Phone,
		GSTIN:            c.GSTIN,
		RepresentativeID: c.RepresentativeID,
	}
}

// ProductModel maps product master data
type ProductModel struct {
	BaseModel
	Name         string          `gorm:"size:255;not null;index"`
	Pack         string          `gorm:"size:50"`
	Manufacturer string          `gorm:"size:255"`
	Stock        decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	CostBasis    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GSTPercent   decimal.Decimal `gorm:"column:gst_percent;type:numeric(5,2);not null"`
}

// TableName overrides the table name
func (ProductModel) TableName() string { return "products" }

// ToDomain converts the model to a domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:   baseEntity(m.BaseModel),
		Name:         m.Name,
		Pack:         m.Pack,
		Manufacturer: m.Manufacturer,
		Stock:        m.Stock,
		CostBasis:    m.CostBasis,
		GSTPercent:   m.GSTPercent,
	}
}

// ProductModelFromDomain converts a domain entity to the model
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		BaseModel:    baseModel(p.BaseEntity),
		Name:         p.Name,
		Pack:         p.Pack,
		Manufacturer: p.Manufacturer,
		Stock:        p.Stock,
		CostBasis:    p.CostBasis,
		GSTPercent:   p.GSTPercent,
	}
}
