package handler

import (
	"github.com/gin-gonic/gin"
	collectionapp "github.com/pharmadist/backend/internal/application/collection"
	"github.com/pharmadist/backend/internal/interfaces/http/dto"
)

// CollectionHandler handles payment ledger endpoints
type CollectionHandler struct {
	BaseHandler
	collections *collectionapp.Service
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collections *collectionapp.Service) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// RegisterRoutes registers ledger routes on the API group
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/collections")
	{
		collections.POST("", h.Add)
		collections.PUT("/:id", h.Update)
		collections.DELETE("/:id", h.Delete)
	}
	orders := rg.Group("/orders")
	{
		orders.GET("/:id/collections", h.Ledger)
		orders.PATCH("/:id/paid", h.MarkPaid)
	}
}

// MarkPaidRequest is the payload for overriding an order's paid flag
type MarkPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// Add handles POST /collections
func (h *CollectionHandler) Add(c *gin.Context) {
	var req collectionapp.AddCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.collections.Add(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req collectionapp.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.collections.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.collections.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Ledger handles GET /orders/:id/collections
func (h *CollectionHandler) Ledger(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.collections.Ledger(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid handles PATCH /orders/:id/paid
func (h *CollectionHandler) MarkPaid(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	if err := h.collections.MarkPaid(c.Request.Context(), id, *req.Paid); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"order_id": id.String(), "payment_received": *req.Paid})
}
