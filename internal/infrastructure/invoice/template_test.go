package invoice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderAndCounter(t *testing.T) (*sales.Order, *catalog.Counter) {
	t.Helper()
	counter := &catalog.Counter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Apex Medicos",
		Address:    "12 MG Road",
		City:       "Indore",
		Phone:      "9876543210",
		GSTIN:      "23ABCDE1234F1Z5",
	}
	order, err := sales.NewOrder(counter.ID, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		sales.HeaderInput{Subtotal: 1000, CGSTTotal: 60, SGSTTotal: 60},
		[]sales.LineInput{
			{ProductID: uuid.New(), ProductName: "Paracetamol 500mg", Quantity: 10, FreeQuantity: 2, Rate: 50, DiscountPercent: 10, CGSTAmount: 30, SGSTAmount: 30},
			{ProductID: uuid.New(), ProductName: "Cough Syrup 100ml", Quantity: 5, Rate: 100, CGSTAmount: 30, SGSTAmount: 30},
		})
	require.NoError(t, err)
	return order, counter
}

func TestBuildDocument(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	doc := BuildDocument(order, counter)

	assert.Equal(t, "Apex Medicos", doc.CounterName)
	assert.Len(t, doc.Lines, 2)
	assert.Equal(t, 1, doc.Lines[0].Serial)
	assert.True(t, doc.Lines[0].HasFree())
	assert.False(t, doc.Lines[1].HasFree())
	assert.True(t, doc.DiscountTotal.Equal(order.DiscountTotal), "persisted line discounts carried as-is")
	assert.Equal(t, "10", doc.Lines[0].DiscountPercent.String())
	assert.Equal(t, "30", doc.Lines[0].CGSTAmount.String())
	assert.Equal(t, "30", doc.Lines[0].SGSTAmount.String())
	assert.Equal(t, "950", doc.TaxableAmount.String(), "subtotal 1000 less 50 discount")
	assert.Equal(t, "2", doc.TotalFreeUnits.String())
	assert.NotEmpty(t, doc.AmountWords)
	assert.Len(t, doc.InvoiceNumber, 8)
}

func TestTemplateEngine_Render(t *testing.T) {
	order, counter := testOrderAndCounter(t)
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.Render(BuildDocument(order, counter))
	require.NoError(t, err)

	assert.Contains(t, html, "TAX INVOICE")
	assert.Contains(t, html, "Apex Medicos")
	assert.Contains(t, html, "GSTIN: 23ABCDE1234F1Z5")
	assert.Contains(t, html, "15-04-2026")
	assert.Contains(t, html, "Paracetamol 500mg")
	assert.Contains(t, html, "+2 Free", "promotional units marked on the line")
	assert.NotContains(t, html, "+0 Free")
	assert.Contains(t, html, "10%", "line discount percent column")
	assert.Contains(t, html, "<th class=\"num\">CGST</th>")
	assert.Contains(t, html, "<th class=\"num\">SGST</th>")
	assert.Contains(t, html, "Taxable Amount")
	assert.Contains(t, html, "<tr><td>Free Units</td><td class=\"num\">2</td></tr>")
	assert.Contains(t, html, "Rupees Only")
}

func TestTemplateEngine_RenderLineTaxColumns(t *testing.T) {
	counter := &catalog.Counter{BaseEntity: shared.NewBaseEntity(), Name: "Apex Medicos"}
	order, err := sales.NewOrder(counter.ID, time.Now(),
		sales.HeaderInput{Subtotal: 960, CGSTTotal: 60, SGSTTotal: 60},
		[]sales.LineInput{
			{ProductID: uuid.New(), ProductName: "Azithromycin 250mg", Quantity: 12, Rate: 80, DiscountPercent: 12.5, CGSTAmount: 60, SGSTAmount: 60},
		})
	require.NoError(t, err)
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.Render(BuildDocument(order, counter))
	require.NoError(t, err)

	// round(960 × 12.5 / 100) = 120
	assert.Contains(t, html, "12.5%")
	assert.Contains(t, html, "<td class=\"num\">120.00</td>")
	assert.Contains(t, html, "<td class=\"num\">60.00</td>", "per-line GST amounts rendered")
	assert.Contains(t, html, "<tr><td>Taxable Amount</td><td class=\"num\">840.00</td></tr>")
}
