package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCollectionRepository implements collection.Repository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder lists the ledger entries for one order, oldest first
func (r *GormCollectionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]collection.Collection, error) {
	var rows []models.CollectionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("transaction_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]collection.Collection, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// Insert creates a new ledger entry
func (r *GormCollectionRepository) Insert(ctx context.Context, c *collection.Collection) error {
	return r.db.WithContext(ctx).Create(models.CollectionModelFromDomain(c)).Error
}

// Update overwrites the mutable fields of a ledger entry
func (r *GormCollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	result := r.db.WithContext(ctx).Model(&models.CollectionModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"amount":           c.Amount,
			"transaction_date": c.TransactionDate,
			"comment":          c.Comment,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a ledger entry
func (r *GormCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CollectionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumForOrder returns the total collected against one order
func (r *GormCollectionRepository) SumForOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.CollectionModel{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

type counterDueRow struct {
	CounterID        uuid.UUID       `gorm:"column:counter_id"`
	CounterName      string          `gorm:"column:counter_name"`
	City             string          `gorm:"column:city"`
	RepresentativeID *uuid.UUID      `gorm:"column:representative_id"`
	TotalOrders      decimal.Decimal `gorm:"column:total_orders"`
	TotalCollected   decimal.Decimal `gorm:"column:total_collected"`
	MonthCollected   decimal.Decimal `gorm:"column:month_collected"`
}

// DuesByCounter aggregates outstanding balances per counter. Each order's
// collected sum is capped at its grand total before summing, so
// over-collection on one order never offsets the dues of another. Rows
// whose due is zero are filtered out.
func (r *GormCollectionRepository) DuesByCounter(ctx context.Context, representativeID *uuid.UUID, month *time.Time) ([]collection.CounterDue, error) {
	capped := "CASE WHEN COALESCE(col.collected, 0) > o.grand_total THEN o.grand_total ELSE COALESCE(col.collected, 0) END"

	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT c.id AS counter_id, c.name AS counter_name, c.city AS city, c.representative_id AS representative_id, ")
	sb.WriteString("SUM(o.grand_total) AS total_orders, ")
	sb.WriteString("SUM(" + capped + ") AS total_collected, ")
	if month != nil {
		sb.WriteString("SUM(COALESCE(mcol.collected, 0)) AS month_collected ")
	} else {
		sb.WriteString("0 AS month_collected ")
	}
	sb.WriteString("FROM orders o ")
	sb.WriteString("JOIN counters c ON c.id = o.counter_id ")
	sb.WriteString("LEFT JOIN (SELECT order_id, SUM(amount) AS collected FROM collections GROUP BY order_id) col ON col.order_id = o.id ")
	if month != nil {
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
		end := start.AddDate(0, 1, 0)
		sb.WriteString("LEFT JOIN (SELECT order_id, SUM(amount) AS collected FROM collections WHERE transaction_date >= ? AND transaction_date < ? GROUP BY order_id) mcol ON mcol.order_id = o.id ")
		args = append(args, start, end)
	}
	if representativeID != nil {
		sb.WriteString("WHERE c.representative_id = ? ")
		args = append(args, *representativeID)
	}
	sb.WriteString("GROUP BY c.id, c.name, c.city, c.representative_id ")
	sb.WriteString("HAVING SUM(o.grand_total) > SUM(" + capped + ") ")
	sb.WriteString("ORDER BY c.name ASC")

	var rows []counterDueRow
	if err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	dues := make([]collection.CounterDue, len(rows))
	for i, row := range rows {
		dues[i] = collection.CounterDue{
			CounterID:        row.CounterID,
			CounterName:      row.CounterName,
			City:             row.City,
			RepresentativeID: row.RepresentativeID,
			TotalOrders:      row.TotalOrders,
			TotalCollected:   row.TotalCollected,
			Due:              row.TotalOrders.Sub(row.TotalCollected),
			MonthCollected:   row.MonthCollected,
		}
	}
	return dues, nil
}

var _ collection.Repository = (*GormCollectionRepository)(nil)
