package catalog

import (
	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/shared"
)

// Counter represents a customer outlet (chemist/pharmacy counter) that
// places orders. Counter master data is maintained elsewhere; the sales
// core only reads it for validation and invoice bill-to details.
type Counter struct {
	shared.BaseEntity
	Name             string
	Address          string
	City             string
	Phone            string
	GSTIN            string
	RepresentativeID *uuid.UUID
}
