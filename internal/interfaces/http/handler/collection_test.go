package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	collectionapp "github.com/pharmadist/backend/internal/application/collection"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/infrastructure/locking"
	"github.com/pharmadist/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectionTestEnv struct {
	engine      *gin.Engine
	orders      *stubOrderRepo
	collections *stubCollectionRepo
	order       *sales.Order
}

func newCollectionTestEnv(t *testing.T, grandTotal float64) *collectionTestEnv {
	t.Helper()
	order, err := sales.NewOrder(uuid.New(), time.Now(),
		sales.HeaderInput{Subtotal: grandTotal},
		[]sales.LineInput{{ProductID: uuid.New(), ProductName: "Azithromycin 250mg", Quantity: 1, Rate: grandTotal}})
	require.NoError(t, err)

	orders := newStubOrderRepo()
	require.NoError(t, orders.Save(context.Background(), order))
	collections := newStubCollectionRepo()

	svc := collectionapp.NewService(collections, orders, locking.NewKeyedMutex(), nil)
	engine := setupRouter(NewCollectionHandler(svc))
	return &collectionTestEnv{engine: engine, orders: orders, collections: collections, order: order}
}

func (env *collectionTestEnv) addCollection(t *testing.T, amount float64) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"order_id":         env.order.ID.String(),
		"amount":           amount,
		"transaction_date": "2026-05-01",
	}
	w := performRequest(env.engine, "POST", "/api/v1/collections", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataField(t, decodeResponse(t, w))
}

func TestCollectionHandler_Add_Partial(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)

	data := env.addCollection(t, 700)

	assert.Equal(t, "700", data["total_collected"])
	assert.Equal(t, "300", data["remaining_balance"])
	assert.Equal(t, false, data["payment_received"])
}

func TestCollectionHandler_Add_SettlesOrder(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)
	env.addCollection(t, 700)

	data := env.addCollection(t, 300)

	assert.Equal(t, "0", data["remaining_balance"])
	assert.Equal(t, true, data["payment_received"])
	assert.Equal(t, true, data["paid_flag_changed"])

	stored, err := env.orders.FindByID(context.Background(), env.order.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentReceived)
}

func TestCollectionHandler_Add_OverCollection(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)
	env.addCollection(t, 700)

	body := map[string]interface{}{
		"order_id": env.order.ID.String(),
		"amount":   400,
	}
	w := performRequest(env.engine, "POST", "/api/v1/collections", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeOverCollection, resp.Error.Code)
}

func TestCollectionHandler_Add_UnknownOrder(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)

	body := map[string]interface{}{
		"order_id": uuid.NewString(),
		"amount":   100,
	}
	w := performRequest(env.engine, "POST", "/api/v1/collections", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionHandler_UpdateAndDelete(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)
	entryID := env.addCollection(t, 1000)["collection"].(map[string]interface{})["id"].(string)

	// shrinking the only entry reopens the order
	body := map[string]interface{}{"amount": 600}
	w := performRequest(env.engine, "PUT", "/api/v1/collections/"+entryID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, "400", data["remaining_balance"])
	assert.Equal(t, false, data["payment_received"])

	w = performRequest(env.engine, "DELETE", "/api/v1/collections/"+entryID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = dataField(t, decodeResponse(t, w))
	assert.Equal(t, "0", data["total_collected"])
	assert.Equal(t, "1000", data["remaining_balance"])
}

func TestCollectionHandler_Ledger(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)
	env.addCollection(t, 300)
	env.addCollection(t, 200)

	w := performRequest(env.engine, "GET", "/api/v1/orders/"+env.order.ID.String()+"/collections", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, "500", data["total_collected"])
	assert.Equal(t, "500", data["remaining_balance"])
	assert.Len(t, data["collections"], 2)
}

func TestCollectionHandler_MarkPaid(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)

	body := map[string]interface{}{"paid": true}
	w := performRequest(env.engine, "PATCH", "/api/v1/orders/"+env.order.ID.String()+"/paid", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err := env.orders.FindByID(context.Background(), env.order.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentReceived)
}

func TestCollectionHandler_MarkPaid_MissingFlag(t *testing.T) {
	env := newCollectionTestEnv(t, 1000)

	w := performRequest(env.engine, "PATCH", "/api/v1/orders/"+env.order.ID.String()+"/paid", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuesHandler_Report(t *testing.T) {
	collections := newStubCollectionRepo()
	repID := uuid.New()
	collections.dues = []collection.CounterDue{
		{
			CounterID:        uuid.New(),
			CounterName:      "Apex Medicos",
			City:             "Indore",
			RepresentativeID: &repID,
			TotalOrders:      decimal.NewFromInt(1500),
			TotalCollected:   decimal.NewFromInt(1000),
			Due:              decimal.NewFromInt(500),
			MonthCollected:   decimal.NewFromInt(200),
		},
		{
			CounterID:      uuid.New(),
			CounterName:    "Bliss Pharma",
			TotalOrders:    decimal.NewFromInt(700),
			TotalCollected: decimal.NewFromInt(100),
			Due:            decimal.NewFromInt(600),
		},
	}
	engine := setupRouter(NewDuesHandler(collectionapp.NewDuesService(collections, nil)))

	w := performRequest(engine, "GET", "/api/v1/dues?month=2026-02", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, "1100", data["total_due"])
	assert.Len(t, data["dues"], 2)
}

func TestDuesHandler_InvalidMonth(t *testing.T) {
	engine := setupRouter(NewDuesHandler(collectionapp.NewDuesService(newStubCollectionRepo(), nil)))

	w := performRequest(engine, "GET", "/api/v1/dues?month=Feb-2026", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code, "rejected at binding, before the service runs")
}

func TestDuesHandler_InvalidRepresentative(t *testing.T) {
	engine := setupRouter(NewDuesHandler(collectionapp.NewDuesService(newStubCollectionRepo(), nil)))

	w := performRequest(engine, "GET", "/api/v1/dues?representative_id=not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
