package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// In-memory repository stubs backing full-stack handler tests

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*sales.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*sales.Order)}
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *stubOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]sales.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]sales.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *stubOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) Save(_ context.Context, order *sales.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *stubOrderRepo) UpdateHeader(_ context.Context, order *sales.Order) error {
	return r.Save(context.Background(), order)
}

func (r *stubOrderRepo) ReplaceLines(_ context.Context, order *sales.Order) error {
	return r.Save(context.Background(), order)
}

func (r *stubOrderRepo) SetInvoiceFile(_ context.Context, id uuid.UUID, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.InvoiceFile = fileName
	return nil
}

func (r *stubOrderRepo) SetPaymentReceived(_ context.Context, id uuid.UUID, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	order.PaymentReceived = paid
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubCounterRepo struct {
	counters map[uuid.UUID]*catalog.Counter
}

func newStubCounterRepo(counters ...*catalog.Counter) *stubCounterRepo {
	repo := &stubCounterRepo{counters: make(map[uuid.UUID]*catalog.Counter)}
	for _, counter := range counters {
		repo.counters[counter.ID] = counter
	}
	return repo
}

func (r *stubCounterRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Counter, error) {
	counter, ok := r.counters[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return counter, nil
}

type stubProductRepo struct {
	mu         sync.Mutex
	decrements map[uuid.UUID]decimal.Decimal
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{decrements: make(map[uuid.UUID]decimal.Decimal)}
}

func (r *stubProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id uuid.UUID, qty decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decrements[id] = r.decrements[id].Add(qty)
	return decimal.NewFromInt(100).Sub(r.decrements[id]), nil
}

type stubCollectionRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*collection.Collection
	dues    []collection.CounterDue
}

func newStubCollectionRepo() *stubCollectionRepo {
	return &stubCollectionRepo{entries: make(map[uuid.UUID]*collection.Collection)}
}

func (r *stubCollectionRepo) FindByID(_ context.Context, id uuid.UUID) (*collection.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *stubCollectionRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]collection.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []collection.Collection
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (r *stubCollectionRepo) Insert(_ context.Context, c *collection.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.entries[c.ID] = &copied
	return nil
}

func (r *stubCollectionRepo) Update(_ context.Context, c *collection.Collection) error {
	return r.Insert(context.Background(), c)
}

func (r *stubCollectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *stubCollectionRepo) SumForOrder(_ context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			total = total.Add(entry.Amount)
		}
	}
	return total, nil
}

func (r *stubCollectionRepo) DuesByCounter(_ context.Context, _ *uuid.UUID, _ *time.Time) ([]collection.CounterDue, error) {
	return r.dues, nil
}
