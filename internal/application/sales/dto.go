package sales

import (
	"time"

	"github.com/pharmadist/backend/internal/domain/sales"
)

// OrderLineRequest is one line of an order create/update payload.
// Amount fields arrive as raw numbers; the domain normalizes NaN and
// infinities to zero.
type OrderLineRequest struct {
	ProductID       string  `json:"product_id" binding:"required,uuid"`
	ProductName     string  `json:"product_name" binding:"required"`
	Quantity        float64 `json:"quantity"`
	FreeQuantity    float64 `json:"free_quantity"`
	Rate            float64 `json:"rate"`
	DiscountPercent float64 `json:"discount_percent"`
	CGSTAmount      float64 `json:"cgst_amount"`
	SGSTAmount      float64 `json:"sgst_amount"`
}

// CreateOrderRequest is the payload for creating an order with its
// full line set
type CreateOrderRequest struct {
	CounterID string             `json:"counter_id" binding:"required,uuid"`
	OrderDate string             `json:"order_date" binding:"omitempty,dateformat"`
	Subtotal  float64            `json:"subtotal"`
	CGSTTotal float64            `json:"cgst_total"`
	SGSTTotal float64            `json:"sgst_total"`
	Lines     []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is the payload for updating an order. When Lines
// is present the whole line set is replaced and the totals recomputed;
// when absent only the header is overwritten and the discount total is
// estimated from the header figures.
type UpdateOrderRequest struct {
	CounterID  string             `json:"counter_id" binding:"required,uuid"`
	OrderDate  string             `json:"order_date" binding:"omitempty,dateformat"`
	Subtotal   float64            `json:"subtotal"`
	CGSTTotal  float64            `json:"cgst_total"`
	SGSTTotal  float64            `json:"sgst_total"`
	GrandTotal float64            `json:"grand_total"`
	Lines      []OrderLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// OrderLineResponse is one rendered order line
type OrderLineResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        string `json:"quantity"`
	FreeQuantity    string `json:"free_quantity"`
	Rate            string `json:"rate"`
	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`
	CGSTAmount      string `json:"cgst_amount"`
	SGSTAmount      string `json:"sgst_amount"`
	LineTotal       string `json:"line_total"`
}

// OrderResponse is the full order representation returned by the API
type OrderResponse struct {
	ID                string              `json:"id"`
	CounterID         string              `json:"counter_id"`
	OrderDate         string              `json:"order_date"`
	Subtotal          string              `json:"subtotal"`
	DiscountTotal     string              `json:"discount_total"`
	CGSTTotal         string              `json:"cgst_total"`
	SGSTTotal         string              `json:"sgst_total"`
	GrandTotal        string              `json:"grand_total"`
	PaymentReceived   bool                `json:"payment_received"`
	InvoiceFile       string              `json:"invoice_file,omitempty"`
	InvoiceURL        string              `json:"invoice_url,omitempty"`
	ItemCount         int                 `json:"item_count"`
	TotalQuantity     string              `json:"total_quantity"`
	TotalFreeQuantity string              `json:"total_free_quantity"`
	Lines             []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ListOrdersResponse is a paginated order list
type ListOrdersResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *sales.Order, invoiceURL string) *OrderResponse {
	resp := &OrderResponse{
		ID:                order.ID.String(),
		CounterID:         order.CounterID.String(),
		OrderDate:         order.OrderDate.Format("2006-01-02"),
		Subtotal:          order.Subtotal.String(),
		DiscountTotal:     order.DiscountTotal.String(),
		CGSTTotal:         order.CGSTTotal.String(),
		SGSTTotal:         order.SGSTTotal.String(),
		GrandTotal:        order.GrandTotal.String(),
		PaymentReceived:   order.PaymentReceived,
		InvoiceFile:       order.InvoiceFile,
		InvoiceURL:        invoiceURL,
		ItemCount:         order.ItemCount(),
		TotalQuantity:     order.TotalQuantity().String(),
		TotalFreeQuantity: order.TotalFreeQuantity().String(),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
	resp.Lines = make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		resp.Lines[i] = OrderLineResponse{
			ID:              line.ID.String(),
			ProductID:       line.ProductID.String(),
			ProductName:     line.ProductName,
			Quantity:        line.Quantity.String(),
			FreeQuantity:    line.FreeQuantity.String(),
			Rate:            line.Rate.String(),
			DiscountPercent: line.DiscountPercent.String(),
			DiscountAmount:  line.DiscountAmount.String(),
			CGSTAmount:      line.CGSTAmount.String(),
			SGSTAmount:      line.SGSTAmount.String(),
			LineTotal:       line.LineTotal.String(),
		}
	}
	return resp
}

func toLineInputs(lines []OrderLineRequest) ([]sales.LineInput, error) {
	inputs := make([]sales.LineInput, len(lines))
	for i, line := range lines {
		productID, err := parseUUID(line.ProductID)
		if err != nil {
			return nil, err
		}
		inputs[i] = sales.LineInput{
			ProductID:       productID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			FreeQuantity:    line.FreeQuantity,
			Rate:            line.Rate,
			DiscountPercent: line.DiscountPercent,
			CGSTAmount:      line.CGSTAmount,
			SGSTAmount:      line.SGSTAmount,
		}
	}
	return inputs, nil
}
