package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCounterRepository implements catalog.CounterRepository using GORM
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GormCounterRepository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// FindByID finds a counter by its ID
func (r *GormCounterRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Counter, error) {
	var model models.CounterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ catalog.CounterRepository = (*GormCounterRepository)(nil)
