package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/pharmadist/backend/internal/application/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/pharmadist/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order transaction endpoints
type OrderHandler struct {
	BaseHandler
	orders *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}
}

// ListOrdersRequest holds the order list query parameters
type ListOrdersRequest struct {
	dto.ListRequest
	CounterID       string `form:"counter_id" binding:"omitempty,uuid"`
	PaymentReceived *bool  `form:"payment_received"`
	StartDate       string `form:"start_date"`
	EndDate         string `form:"end_date"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	req := ListOrdersRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Filters:  map[string]interface{}{},
	}
	if req.CounterID != "" {
		filter.Filters["counter_id"] = req.CounterID
	}
	if req.PaymentReceived != nil {
		filter.Filters["payment_received"] = *req.PaymentReceived
	}
	if !h.bindDateFilter(c, filter.Filters, "start_date", req.StartDate) {
		return
	}
	if !h.bindDateFilter(c, filter.Filters, "end_date", req.EndDate) {
		return
	}

	resp, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Orders, resp.Total, resp.Page, resp.PageSize)
}

// Update handles PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req salesapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orders.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidID, "Invalid ID: "+c.Param("id"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidID, "Invalid ID: "+req.ID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) bindDateFilter(c *gin.Context, filters map[string]interface{}, key, value string) bool {
	if value == "" {
		return true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidDate, "Invalid "+key+", expected YYYY-MM-DD: "+value)
		return false
	}
	filters[key] = t
	return true
}
