package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockCollectionRepository struct {
	mock.Mock
}

func (m *mockCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *mockCollectionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]collection.Collection, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Collection), args.Error(1)
}

func (m *mockCollectionRepository) Insert(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCollectionRepository) SumForOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCollectionRepository) DuesByCounter(ctx context.Context, representativeID *uuid.UUID, month *time.Time) ([]collection.CounterDue, error) {
	args := m.Called(ctx, representativeID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.CounterDue), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *mockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) UpdateHeader(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) ReplaceLines(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) SetInvoiceFile(ctx context.Context, id uuid.UUID, fileName string) error {
	args := m.Called(ctx, id, fileName)
	return args.Error(0)
}

func (m *mockOrderRepository) SetPaymentReceived(ctx context.Context, id uuid.UUID, paid bool) error {
	args := m.Called(ctx, id, paid)
	return args.Error(0)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
