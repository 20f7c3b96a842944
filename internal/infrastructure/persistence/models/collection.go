package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/shopspring/decimal"
)

// CollectionModel maps one payment-ledger entry
type CollectionModel struct {
	BaseModel
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Comment         string          `gorm:"size:500"`
}

// TableName overrides the table name
func (CollectionModel) TableName() string { return "collections" }

// ToDomain converts the model to a domain entity
func (m *CollectionModel) ToDomain() *collection.Collection {
	return &collection.Collection{
		BaseEntity:      baseEntity(m.BaseModel),
		OrderID:         m.OrderID,
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Comment:         m.Comment,
	}
}

// CollectionModelFromDomain converts a domain entity to the model
func CollectionModelFromDomain(c *collection.Collection) *CollectionModel {
	return &CollectionModel{
		BaseModel:       baseModel(c.BaseEntity),
		OrderID:         c.OrderID,
		Amount:          c.Amount,
		TransactionDate: c.TransactionDate,
		Comment:         c.Comment,
	}
}
