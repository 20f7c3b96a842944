package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLocker serializes ledger writes per order
type OrderLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// Service implements the collections and dues reconciliation operations
type Service struct {
	collections collection.Repository
	orders      sales.OrderRepository
	locker      OrderLocker
	logger      *zap.Logger
}

// NewService creates a new collection service
func NewService(collections collection.Repository, orders sales.OrderRepository, locker OrderLocker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		collections: collections,
		orders:      orders,
		locker:      locker,
		logger:      logger,
	}
}

// Add records a payment against an order. The whole check-then-insert
// runs under the order's lock so two concurrent payments cannot both
// pass the remaining-balance check.
func (s *Service) Add(ctx context.Context, req *AddCollectionRequest) (*LedgerResponse, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ID", "Invalid order ID: "+req.OrderID)
	}

	release, err := s.locker.Lock(ctx, orderID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	collected, err := s.collections.SumForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	remaining := collection.RemainingBalance(order.GrandTotal, collected)

	txDate, err := parseDate(req.TransactionDate)
	if err != nil {
		return nil, err
	}
	amount := decimal.NewFromFloat(valueobject.SanitizeFloat(req.Amount))

	entry, err := collection.NewCollection(orderID, amount, txDate, req.Comment, remaining)
	if err != nil {
		return nil, err
	}

	if err := s.collections.Insert(ctx, entry); err != nil {
		return nil, err
	}

	newTotal := collected.Add(amount)
	var flagChanged bool
	if req.MarkAsPaid {
		if !order.PaymentReceived {
			if err := s.orders.SetPaymentReceived(ctx, order.ID, true); err != nil {
				return nil, err
			}
			order.SetPaymentReceived(true)
			flagChanged = true
		}
	} else {
		flagChanged, err = s.syncPaidFlag(ctx, order, newTotal)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("collection recorded",
		zap.String("order_id", orderID.String()),
		zap.String("amount", amount.String()),
		zap.Bool("paid_flag_changed", flagChanged))

	return &LedgerResponse{
		Collection:       toCollectionResponse(entry),
		TotalCollected:   newTotal.String(),
		RemainingBalance: collection.RemainingBalance(order.GrandTotal, newTotal).String(),
		PaymentReceived:  order.PaymentReceived,
		PaidFlagChanged:  flagChanged,
	}, nil
}

// Update edits a ledger entry. The new amount is validated against the
// balance remaining once this entry's old amount is excluded, and the
// order's paid flag is re-derived from the resulting ledger.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateCollectionRequest) (*LedgerResponse, error) {
	entry, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, entry.OrderID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.FindByID(ctx, entry.OrderID)
	if err != nil {
		return nil, err
	}

	collected, err := s.collections.SumForOrder(ctx, entry.OrderID)
	if err != nil {
		return nil, err
	}
	othersCollected := collected.Sub(entry.Amount)
	remaining := collection.RemainingBalance(order.GrandTotal, othersCollected)

	amount := decimal.NewFromFloat(valueobject.SanitizeFloat(req.Amount))
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Collection amount must be positive")
	}
	if amount.GreaterThan(remaining) {
		return nil, shared.ErrOverCollection
	}

	txDate, err := parseDate(req.TransactionDate)
	if err != nil {
		return nil, err
	}

	entry.Amount = amount
	if !txDate.IsZero() {
		entry.TransactionDate = txDate
	}
	entry.Comment = req.Comment
	entry.Touch()

	if err := s.collections.Update(ctx, entry); err != nil {
		return nil, err
	}

	newTotal := othersCollected.Add(amount)
	flagChanged, err := s.syncPaidFlag(ctx, order, newTotal)
	if err != nil {
		return nil, err
	}

	return &LedgerResponse{
		Collection:       toCollectionResponse(entry),
		TotalCollected:   newTotal.String(),
		RemainingBalance: collection.RemainingBalance(order.GrandTotal, newTotal).String(),
		PaymentReceived:  order.PaymentReceived,
		PaidFlagChanged:  flagChanged,
	}, nil
}

// Delete removes a ledger entry and re-derives the order's paid flag
// from what remains
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*LedgerResponse, error) {
	entry, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, entry.OrderID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.FindByID(ctx, entry.OrderID)
	if err != nil {
		return nil, err
	}

	if err := s.collections.Delete(ctx, id); err != nil {
		return nil, err
	}

	newTotal, err := s.collections.SumForOrder(ctx, entry.OrderID)
	if err != nil {
		return nil, err
	}
	flagChanged, err := s.syncPaidFlag(ctx, order, newTotal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("collection deleted",
		zap.String("collection_id", id.String()),
		zap.String("order_id", entry.OrderID.String()),
		zap.Bool("paid_flag_changed", flagChanged))

	return &LedgerResponse{
		TotalCollected:   newTotal.String(),
		RemainingBalance: collection.RemainingBalance(order.GrandTotal, newTotal).String(),
		PaymentReceived:  order.PaymentReceived,
		PaidFlagChanged:  flagChanged,
	}, nil
}

// Ledger returns an order's full payment ledger with its balance
func (s *Service) Ledger(ctx context.Context, orderID uuid.UUID) (*OrderLedgerResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	entries, err := s.collections.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	resp := &OrderLedgerResponse{
		OrderID:         orderID.String(),
		GrandTotal:      order.GrandTotal.String(),
		PaymentReceived: order.PaymentReceived,
		Collections:     make([]CollectionResponse, len(entries)),
	}
	for i := range entries {
		total = total.Add(entries[i].Amount)
		resp.Collections[i] = *toCollectionResponse(&entries[i])
	}
	resp.TotalCollected = total.String()
	resp.RemainingBalance = collection.RemainingBalance(order.GrandTotal, total).String()
	return resp, nil
}

// MarkPaid manually overrides the order's paid flag, used for
// write-offs where the ledger will never cover the grand total
func (s *Service) MarkPaid(ctx context.Context, orderID uuid.UUID, paid bool) error {
	if err := s.orders.SetPaymentReceived(ctx, orderID, paid); err != nil {
		return err
	}
	s.logger.Info("paid flag overridden",
		zap.String("order_id", orderID.String()),
		zap.Bool("paid", paid))
	return nil
}

// syncPaidFlag persists the paid flag when the settled predicate
// disagrees with the stored value, and mutates order to match
func (s *Service) syncPaidFlag(ctx context.Context, order *sales.Order, collected decimal.Decimal) (bool, error) {
	settled := collection.IsSettled(order.GrandTotal, collected)
	if settled == order.PaymentReceived {
		return false, nil
	}
	if err := s.orders.SetPaymentReceived(ctx, order.ID, settled); err != nil {
		return false, err
	}
	order.SetPaymentReceived(settled)
	return true, nil
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
