package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmadist/backend/internal/infrastructure/invoice"
)

// InvoiceHandler serves stored invoice documents
type InvoiceHandler struct {
	BaseHandler
	storage *invoice.Storage
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(storage *invoice.Storage) *InvoiceHandler {
	return &InvoiceHandler{storage: storage}
}

// RegisterRoutes registers the invoice download route on the API group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices/:filename", h.Download)
}

// Download handles GET /invoices/:filename. The storage layer rejects
// anything that does not match the generated-name pattern, so traversal
// attempts never reach the filesystem.
func (h *InvoiceHandler) Download(c *gin.Context) {
	fileName := c.Param("filename")

	file, err := h.storage.Open(fileName)
	if err != nil {
		h.NotFound(c, "Invoice not found: "+fileName)
		return
	}
	defer file.Close()

	contentType := "application/pdf"
	if strings.HasSuffix(fileName, ".html") {
		contentType = "text/html; charset=utf-8"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `inline; filename="`+fileName+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		// Headers are already written, nothing useful left to send
		_ = c.Error(err)
	}
}
