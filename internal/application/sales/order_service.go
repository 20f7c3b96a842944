package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceResult reports a generated invoice document
type InvoiceResult struct {
	FileName     string
	URL          string
	UsedFallback bool
}

// InvoiceGenerator renders and stores the invoice for an order
type InvoiceGenerator interface {
	Generate(ctx context.Context, order *sales.Order, counter *catalog.Counter) (*InvoiceResult, error)
}

// OrderService implements the order transaction operations
type OrderService struct {
	orders   sales.OrderRepository
	counters catalog.CounterRepository
	products catalog.ProductRepository
	invoices InvoiceGenerator
	logger   *zap.Logger
}

// NewOrderService creates a new order service. invoices may be nil,
// invoice generation is then skipped entirely.
func NewOrderService(
	orders sales.OrderRepository,
	counters catalog.CounterRepository,
	products catalog.ProductRepository,
	invoices InvoiceGenerator,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:   orders,
		counters: counters,
		products: products,
		invoices: invoices,
		logger:   logger,
	}
}

// Create validates the counter, persists the order with its lines in
// one transaction, then decrements stock per product and generates the
// invoice. Stock and invoice failures do not fail the order: the order
// is already committed, failures are logged and the response reflects
// what succeeded.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	counterID, err := parseUUID(req.CounterID)
	if err != nil {
		return nil, err
	}

	counter, err := s.counters.FindByID(ctx, counterID)
	if err != nil {
		return nil, err
	}

	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		return nil, err
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrder(counterID, orderDate, sales.HeaderInput{
		Subtotal:  req.Subtotal,
		CGSTTotal: req.CGSTTotal,
		SGSTTotal: req.SGSTTotal,
	}, lines)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.decrementStock(ctx, order)
	invoiceURL := s.generateInvoice(ctx, order, counter)

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("counter_id", counterID.String()),
		zap.Int("items", order.ItemCount()),
		zap.String("grand_total", order.GrandTotal.String()))

	return ToOrderResponse(order, invoiceURL), nil
}

// Get loads one order with its lines
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, ""), nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*ListOrdersResponse, error) {
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &ListOrdersResponse{
		Orders:   make([]OrderResponse, len(orders)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}
	for i := range orders {
		resp.Orders[i] = *ToOrderResponse(&orders[i], "")
	}
	return resp, nil
}

// Update overwrites the order header and, when lines are supplied,
// replaces the whole line set and recomputes the totals. Without lines
// the caller's grand total is taken as-is and the discount total is
// estimated from the header figures. Stock is not re-adjusted on
// update. The invoice is regenerated unconditionally but non-fatally.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counterID, err := parseUUID(req.CounterID)
	if err != nil {
		return nil, err
	}
	counter, err := s.counters.FindByID(ctx, counterID)
	if err != nil {
		return nil, err
	}

	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		return nil, err
	}
	if !orderDate.IsZero() {
		order.OrderDate = orderDate
	}
	order.CounterID = counterID
	order.Subtotal = decimal.NewFromFloat(valueobject.SanitizeFloat(req.Subtotal))
	order.CGSTTotal = decimal.NewFromFloat(valueobject.SanitizeFloat(req.CGSTTotal))
	order.SGSTTotal = decimal.NewFromFloat(valueobject.SanitizeFloat(req.SGSTTotal))

	if len(req.Lines) > 0 {
		lines, err := toLineInputs(req.Lines)
		if err != nil {
			return nil, err
		}
		if err := order.ReplaceLines(lines); err != nil {
			return nil, err
		}
		if err := s.orders.UpdateHeader(ctx, order); err != nil {
			return nil, err
		}
		if err := s.orders.ReplaceLines(ctx, order); err != nil {
			return nil, err
		}
	} else {
		order.GrandTotal = valueobject.RoundRupee(
			decimal.NewFromFloat(valueobject.SanitizeFloat(req.GrandTotal)))
		order.ApplyHeaderDiscountHeuristic()
		if err := s.orders.UpdateHeader(ctx, order); err != nil {
			return nil, err
		}
	}

	invoiceURL := s.generateInvoice(ctx, order, counter)

	s.logger.Info("order updated",
		zap.String("order_id", order.ID.String()),
		zap.Bool("lines_replaced", len(req.Lines) > 0))

	return ToOrderResponse(order, invoiceURL), nil
}

// Delete removes the order, its lines and its ledger entries
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}

// decrementStock reduces stock for every product on the order, paid
// plus free units. The order is already committed; a failed decrement
// is logged and skipped so one missing product cannot undo the sale.
func (s *OrderService) decrementStock(ctx context.Context, order *sales.Order) {
	for productID, qty := range order.ConsumedByProduct() {
		remaining, err := s.products.DecrementStock(ctx, productID, qty)
		if err != nil {
			s.logger.Warn("stock decrement failed",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", productID.String()),
				zap.String("quantity", qty.String()),
				zap.Error(err))
			continue
		}
		if remaining.IsZero() {
			s.logger.Info("product out of stock",
				zap.String("product_id", productID.String()))
		}
	}
}

// generateInvoice renders and stores the invoice, recording the file
// reference on the order. Failures are logged, never propagated.
func (s *OrderService) generateInvoice(ctx context.Context, order *sales.Order, counter *catalog.Counter) string {
	if s.invoices == nil {
		return ""
	}
	result, err := s.invoices.Generate(ctx, order, counter)
	if err != nil {
		s.logger.Warn("invoice generation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return ""
	}
	order.SetInvoiceFile(result.FileName)
	if err := s.orders.SetInvoiceFile(ctx, order.ID, result.FileName); err != nil {
		s.logger.Warn("failed to record invoice file",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
	return result.URL
}

func parseUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_ID", "Invalid UUID: "+value)
	}
	return id, nil
}

// parseDate accepts an empty string (zero time) or a YYYY-MM-DD date
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Invalid date, expected YYYY-MM-DD: "+value)
	}
	return date, nil
}
