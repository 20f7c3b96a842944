package handler

import (
	"github.com/gin-gonic/gin"
	collectionapp "github.com/pharmadist/backend/internal/application/collection"
	"github.com/pharmadist/backend/internal/interfaces/http/dto"
)

// DuesHandler handles the per-counter dues report endpoint
type DuesHandler struct {
	BaseHandler
	dues *collectionapp.DuesService
}

// NewDuesHandler creates a new DuesHandler
func NewDuesHandler(dues *collectionapp.DuesService) *DuesHandler {
	return &DuesHandler{dues: dues}
}

// RegisterRoutes registers the dues report route on the API group
func (h *DuesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dues", h.Dues)
}

// DuesRequest holds the dues report query parameters
type DuesRequest struct {
	RepresentativeID string `form:"representative_id" binding:"omitempty,uuid"`
	Month            string `form:"month" binding:"omitempty,monthformat"`
}

// Dues handles GET /dues
func (h *DuesHandler) Dues(c *gin.Context) {
	var req DuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.dues.Dues(c.Request.Context(), req.RepresentativeID, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
