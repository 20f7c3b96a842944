package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// TemplateEngine renders an invoice document to HTML
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the built-in invoice template
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs()).Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// Render produces the invoice HTML for a document
func (e *TemplateEngine) Render(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"qty": func(d decimal.Decimal) string {
			if d.Equal(d.Truncate(0)) {
				return d.Truncate(0).String()
			}
			return d.String()
		},
		"date": func(t time.Time) string {
			return t.Format("02-01-2006")
		},
	}
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.InvoiceNumber}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #222; margin: 0; }
.header { text-align: center; border-bottom: 2px solid #222; padding-bottom: 8px; margin-bottom: 12px; }
.header h1 { margin: 0; font-size: 20px; }
.meta { display: flex; justify-content: space-between; margin-bottom: 12px; }
.meta .billto { max-width: 60%; }
table.lines { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
table.lines th, table.lines td { border: 1px solid #999; padding: 4px 6px; }
table.lines th { background: #eee; text-align: left; }
td.num, th.num { text-align: right; }
.free { color: #0a7d1e; font-size: 10px; white-space: nowrap; }
.totals { width: 40%; margin-left: auto; border-collapse: collapse; }
.totals td { padding: 2px 6px; }
.totals td.num { text-align: right; }
.totals tr.grand td { border-top: 1px solid #222; font-weight: bold; }
.words { margin-top: 10px; font-style: italic; }
.footer { margin-top: 24px; text-align: right; }
</style>
</head>
<body>
<div class="header">
	<h1>TAX INVOICE</h1>
	<div>Invoice No: {{.InvoiceNumber}} &nbsp;|&nbsp; Date: {{date .OrderDate}}</div>
</div>
<div class="meta">
	<div class="billto">
		<strong>{{.CounterName}}</strong><br>
		{{if .CounterAddress}}{{.CounterAddress}}<br>{{end}}
		{{if .CounterCity}}{{.CounterCity}}<br>{{end}}
		{{if .CounterPhone}}Phone: {{.CounterPhone}}<br>{{end}}
		{{if .CounterGSTIN}}GSTIN: {{.CounterGSTIN}}{{end}}
	</div>
</div>
<table class="lines">
	<thead>
		<tr>
			<th>#</th>
			<th>Product</th>
			<th class="num">Qty</th>
			<th class="num">Rate</th>
			<th class="num">Disc %</th>
			<th class="num">Discount</th>
			<th class="num">CGST</th>
			<th class="num">SGST</th>
			<th class="num">Amount</th>
		</tr>
	</thead>
	<tbody>
	{{range .Lines}}
		<tr>
			<td>{{.Serial}}</td>
			<td>{{.ProductName}}</td>
			<td class="num">{{qty .Quantity}}{{if .HasFree}} <span class="free">+{{qty .FreeQuantity}} Free</span>{{end}}</td>
			<td class="num">{{money .Rate}}</td>
			<td class="num">{{qty .DiscountPercent}}%</td>
			<td class="num">{{money .DiscountAmount}}</td>
			<td class="num">{{money .CGSTAmount}}</td>
			<td class="num">{{money .SGSTAmount}}</td>
			<td class="num">{{money .LineTotal}}</td>
		</tr>
	{{end}}
	</tbody>
</table>
<table class="totals">
	<tr><td>Subtotal</td><td class="num">{{money .Subtotal}}</td></tr>
	<tr><td>Discount</td><td class="num">{{money .DiscountTotal}}</td></tr>
	<tr><td>Taxable Amount</td><td class="num">{{money .TaxableAmount}}</td></tr>
	<tr><td>CGST</td><td class="num">{{money .CGSTTotal}}</td></tr>
	<tr><td>SGST</td><td class="num">{{money .SGSTTotal}}</td></tr>
	<tr><td>Free Units</td><td class="num">{{qty .TotalFreeUnits}}</td></tr>
	<tr class="grand"><td>Grand Total</td><td class="num">{{money .GrandTotal}}</td></tr>
</table>
<div class="words">{{.AmountWords}}</div>
<div class="footer">Authorised Signatory</div>
</body>
</html>`
