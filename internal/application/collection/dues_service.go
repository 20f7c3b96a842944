package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/collection"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DuesService answers the per-counter outstanding dues report
type DuesService struct {
	collections collection.Repository
	logger      *zap.Logger
}

// NewDuesService creates a new dues service
func NewDuesService(collections collection.Repository, logger *zap.Logger) *DuesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuesService{collections: collections, logger: logger}
}

// Dues aggregates outstanding balances per counter. representativeID
// narrows the report to one representative's counters when non-empty;
// month (YYYY-MM) additionally reports the amount collected inside
// that calendar month.
func (s *DuesService) Dues(ctx context.Context, representativeID, month string) (*DuesResponse, error) {
	var repID *uuid.UUID
	if representativeID != "" {
		id, err := uuid.Parse(representativeID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "Invalid representative ID: "+representativeID)
		}
		repID = &id
	}

	var monthStart *time.Time
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Invalid month, expected YYYY-MM: "+month)
		}
		monthStart = &parsed
	}

	dues, err := s.collections.DuesByCounter(ctx, repID, monthStart)
	if err != nil {
		return nil, err
	}

	resp := &DuesResponse{Dues: make([]CounterDueResponse, len(dues))}
	totalDue := decimal.Zero
	for i, due := range dues {
		row := CounterDueResponse{
			CounterID:      due.CounterID.String(),
			CounterName:    due.CounterName,
			City:           due.City,
			TotalOrders:    due.TotalOrders.String(),
			TotalCollected: due.TotalCollected.String(),
			Due:            due.Due.String(),
		}
		if due.RepresentativeID != nil {
			row.RepresentativeID = due.RepresentativeID.String()
		}
		if monthStart != nil {
			row.MonthCollected = due.MonthCollected.String()
		}
		resp.Dues[i] = row
		totalDue = totalDue.Add(due.Due)
	}
	resp.TotalDue = totalDue.String()
	return resp, nil
}
