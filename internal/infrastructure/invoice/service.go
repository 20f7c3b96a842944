package invoice

import (
	"context"

	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/sales"
	"go.uber.org/zap"
)

// Generator produces invoice documents for orders: HTML via the
// template engine, PDF via the headless browser, with an optional
// plain-HTML fallback when PDF conversion is unavailable or fails.
type Generator struct {
	renderer     PDFRenderer
	engine       *TemplateEngine
	storage      *Storage
	fallbackHTML bool
	logger       *zap.Logger
}

// GenerateResult reports the stored invoice file
type GenerateResult struct {
	FileName     string
	URL          string
	UsedFallback bool
}

// NewGenerator creates an invoice generator. renderer may be nil when
// no browser is available; generation then requires the HTML fallback.
func NewGenerator(renderer PDFRenderer, engine *TemplateEngine, storage *Storage, fallbackHTML bool, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		renderer:     renderer,
		engine:       engine,
		storage:      storage,
		fallbackHTML: fallbackHTML,
		logger:       logger,
	}
}

// Generate renders and stores the invoice for an order, returning the
// stored file name. PDF failures fall back to storing the HTML itself
// when the fallback is enabled.
func (g *Generator) Generate(ctx context.Context, order *sales.Order, counter *catalog.Counter) (*GenerateResult, error) {
	doc := BuildDocument(order, counter)

	html, err := g.engine.Render(doc)
	if err != nil {
		return nil, err
	}

	if g.renderer == nil {
		if !g.fallbackHTML {
			return nil, NewRenderError(ErrCodeBrowserNotFound, "no PDF renderer available and HTML fallback disabled", nil)
		}
		return g.storeHTML(order, html)
	}

	result, renderErr := g.renderer.Render(ctx, &RenderRequest{
		HTML:  html,
		Title: "Invoice " + doc.InvoiceNumber,
	})
	if renderErr == nil {
		fileName, err := g.storage.Save(FileName(order.ID, "pdf"), result.PDFData)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{FileName: fileName, URL: g.storage.URL(fileName)}, nil
	}

	g.logger.Warn("PDF render failed",
		zap.String("order_id", order.ID.String()),
		zap.Error(renderErr))

	// the HTML is always written out on a render failure; the fallback
	// flag only decides whether the caller gets it as the invoice
	// reference or the original render error
	stored, storeErr := g.storeHTML(order, html)
	if g.fallbackHTML {
		return stored, storeErr
	}
	if storeErr != nil {
		g.logger.Error("failed to write HTML debug copy", zap.Error(storeErr))
	}
	return nil, renderErr
}

// storeHTML writes the rendered HTML document to invoice storage
func (g *Generator) storeHTML(order *sales.Order, html string) (*GenerateResult, error) {
	fileName, err := g.storage.Save(FileName(order.ID, "html"), []byte(html))
	if err != nil {
		return nil, err
	}
	g.logger.Info("stored HTML invoice",
		zap.String("order_id", order.ID.String()),
		zap.String("file", fileName))
	return &GenerateResult{FileName: fileName, URL: g.storage.URL(fileName), UsedFallback: true}, nil
}

// Close releases renderer resources
func (g *Generator) Close() error {
	if g.renderer != nil {
		return g.renderer.Close()
	}
	return nil
}
