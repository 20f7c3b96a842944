package collection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/infrastructure/locking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func unpaidOrder(t *testing.T, grandTotal float64) *sales.Order {
	t.Helper()
	order, err := sales.NewOrder(uuid.New(), time.Now(),
		sales.HeaderInput{Subtotal: grandTotal},
		[]sales.LineInput{{ProductID: uuid.New(), ProductName: "Paracetamol 500mg", Quantity: 1, Rate: grandTotal}})
	require.NoError(t, err)
	return order
}

func newTestService(t *testing.T) (*Service, *mockCollectionRepository, *mockOrderRepository) {
	t.Helper()
	collections := new(mockCollectionRepository)
	orders := new(mockOrderRepository)
	svc := NewService(collections, orders, locking.NewKeyedMutex(), nil)
	return svc, collections, orders
}

func TestService_Add_PartialPayment(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(0), nil)
	collections.On("Insert", mock.Anything, mock.AnythingOfType("*collection.Collection")).Return(nil)

	resp, err := svc.Add(context.Background(), &AddCollectionRequest{
		OrderID: order.ID.String(),
		Amount:  700,
	})
	require.NoError(t, err)
	assert.Equal(t, "700", resp.TotalCollected)
	assert.Equal(t, "300", resp.RemainingBalance)
	assert.False(t, resp.PaymentReceived)
	assert.False(t, resp.PaidFlagChanged)
	orders.AssertNotCalled(t, "SetPaymentReceived", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Add_OverCollectionRejected(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(700), nil)

	_, err := svc.Add(context.Background(), &AddCollectionRequest{
		OrderID: order.ID.String(),
		Amount:  400,
	})
	assert.ErrorIs(t, err, shared.ErrOverCollection, "400 exceeds the 300 remaining")
	collections.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_Add_ExactRemainingFlipsPaidFlag(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(700), nil)
	collections.On("Insert", mock.Anything, mock.Anything).Return(nil)
	orders.On("SetPaymentReceived", mock.Anything, order.ID, true).Return(nil)

	resp, err := svc.Add(context.Background(), &AddCollectionRequest{
		OrderID: order.ID.String(),
		Amount:  300,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.TotalCollected)
	assert.Equal(t, "0", resp.RemainingBalance)
	assert.True(t, resp.PaymentReceived)
	assert.True(t, resp.PaidFlagChanged)
	orders.AssertExpectations(t)
}

func TestService_Add_MarkAsPaidOverride(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(0), nil)
	collections.On("Insert", mock.Anything, mock.Anything).Return(nil)
	orders.On("SetPaymentReceived", mock.Anything, order.ID, true).Return(nil)

	// a 200 write-off on a 1000 order still settles it
	resp, err := svc.Add(context.Background(), &AddCollectionRequest{
		OrderID:    order.ID.String(),
		Amount:     200,
		MarkAsPaid: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.TotalCollected)
	assert.True(t, resp.PaymentReceived)
	assert.True(t, resp.PaidFlagChanged)
	orders.AssertExpectations(t)
}

func TestService_Add_OrderNotFound(t *testing.T) {
	svc, _, orders := newTestService(t)
	orderID := uuid.New()
	orders.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

	_, err := svc.Add(context.Background(), &AddCollectionRequest{
		OrderID: orderID.String(),
		Amount:  100,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Update_RevalidatesAgainstOthers(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)
	entry, err := collection.NewCollection(order.ID, d(300), time.Now(), "", d(1000))
	require.NoError(t, err)

	collections.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	// 900 collected including this entry's 300, so others hold 600
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(900), nil)

	// 500 would push the ledger to 1100
	_, err = svc.Update(context.Background(), entry.ID, &UpdateCollectionRequest{Amount: 500})
	assert.ErrorIs(t, err, shared.ErrOverCollection)

	// 400 lands exactly on the grand total and settles the order
	collections.On("Update", mock.Anything, entry).Return(nil)
	orders.On("SetPaymentReceived", mock.Anything, order.ID, true).Return(nil)

	resp, err := svc.Update(context.Background(), entry.ID, &UpdateCollectionRequest{Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.TotalCollected)
	assert.True(t, resp.PaidFlagChanged)
}

func TestService_Delete_ClearsPaidFlag(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)
	order.SetPaymentReceived(true)
	entry, err := collection.NewCollection(order.ID, d(400), time.Now(), "", d(1000))
	require.NoError(t, err)

	collections.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("Delete", mock.Anything, entry.ID).Return(nil)
	collections.On("SumForOrder", mock.Anything, order.ID).Return(d(600), nil)
	orders.On("SetPaymentReceived", mock.Anything, order.ID, false).Return(nil)

	resp, err := svc.Delete(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "600", resp.TotalCollected)
	assert.Equal(t, "400", resp.RemainingBalance)
	assert.False(t, resp.PaymentReceived)
	assert.True(t, resp.PaidFlagChanged)
}

func TestService_Ledger(t *testing.T) {
	svc, collections, orders := newTestService(t)
	order := unpaidOrder(t, 1000)

	e1, err := collection.NewCollection(order.ID, d(300), time.Now(), "first", d(1000))
	require.NoError(t, err)
	e2, err := collection.NewCollection(order.ID, d(200), time.Now(), "second", d(700))
	require.NoError(t, err)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	collections.On("FindByOrder", mock.Anything, order.ID).Return([]collection.Collection{*e1, *e2}, nil)

	resp, err := svc.Ledger(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Collections, 2)
	assert.Equal(t, "500", resp.TotalCollected)
	assert.Equal(t, "500", resp.RemainingBalance)
}

func TestService_MarkPaid(t *testing.T) {
	svc, _, orders := newTestService(t)
	orderID := uuid.New()
	orders.On("SetPaymentReceived", mock.Anything, orderID, true).Return(nil)

	require.NoError(t, svc.MarkPaid(context.Background(), orderID, true))
	orders.AssertExpectations(t)
}

func TestDuesService_Dues(t *testing.T) {
	collections := new(mockCollectionRepository)
	svc := NewDuesService(collections, nil)

	repID := uuid.New()
	rows := []collection.CounterDue{
		{CounterID: uuid.New(), CounterName: "Apex Medicos", City: "Indore", RepresentativeID: &repID, TotalOrders: d(1500), TotalCollected: d(1000), Due: d(500), MonthCollected: d(200)},
		{CounterID: uuid.New(), CounterName: "Bliss Pharma", City: "Bhopal", TotalOrders: d(700), TotalCollected: d(100), Due: d(600)},
	}
	collections.On("DuesByCounter", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("*time.Time")).Return(rows, nil)

	resp, err := svc.Dues(context.Background(), "", "2026-02")
	require.NoError(t, err)
	assert.Len(t, resp.Dues, 2)
	assert.Equal(t, "1100", resp.TotalDue)
	assert.Equal(t, "200", resp.Dues[0].MonthCollected)
	assert.Equal(t, repID.String(), resp.Dues[0].RepresentativeID)
}

func TestDuesService_InvalidMonth(t *testing.T) {
	svc := NewDuesService(new(mockCollectionRepository), nil)

	_, err := svc.Dues(context.Background(), "", "Feb-2026")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MONTH", domainErr.Code)
}

func TestDuesService_InvalidRepresentative(t *testing.T) {
	svc := NewDuesService(new(mockCollectionRepository), nil)
	_, err := svc.Dues(context.Background(), "not-a-uuid", "")
	assert.Error(t, err)
}
