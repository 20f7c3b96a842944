package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	collectionapp "github.com/pharmadist/backend/internal/application/collection"
	salesapp "github.com/pharmadist/backend/internal/application/sales"
	"github.com/pharmadist/backend/internal/domain/catalog"
	"github.com/pharmadist/backend/internal/domain/sales"
	"github.com/pharmadist/backend/internal/infrastructure/config"
	"github.com/pharmadist/backend/internal/infrastructure/invoice"
	"github.com/pharmadist/backend/internal/infrastructure/locking"
	"github.com/pharmadist/backend/internal/infrastructure/logger"
	"github.com/pharmadist/backend/internal/infrastructure/persistence"
	"github.com/pharmadist/backend/internal/interfaces/http/handler"
	"github.com/pharmadist/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting pharma distribution backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	counterRepo := persistence.NewGormCounterRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)

	invoiceStorage, err := invoice.NewStorage(cfg.Invoice.OutputDir, cfg.Invoice.BaseURL, log)
	if err != nil {
		log.Fatal("Failed to open invoice storage", zap.Error(err))
	}

	invoices, err := buildInvoiceGenerator(cfg, invoiceStorage, log)
	if err != nil {
		log.Fatal("Failed to initialize invoice generation", zap.Error(err))
	}
	defer func() {
		_ = invoices.gen.Close()
	}()

	locker, err := locking.NewFromConfig(cfg)
	if err != nil {
		log.Fatal("Failed to initialize order locking", zap.Error(err))
	}

	orderService := salesapp.NewOrderService(orderRepo, counterRepo, productRepo, invoices, log)
	collectionService := collectionapp.NewService(collectionRepo, orderRepo, locker, log)
	duesService := collectionapp.NewDuesService(collectionRepo, log)

	r := router.New(cfg, log)
	r.Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewCollectionHandler(collectionService)).
		Register(handler.NewDuesHandler(duesService)).
		Register(handler.NewInvoiceHandler(invoiceStorage))

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Setup(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// invoiceGenerator adapts the infrastructure invoice generator to the
// order service's port
type invoiceGenerator struct {
	gen *invoice.Generator
}

func (g *invoiceGenerator) Generate(ctx context.Context, order *sales.Order, counter *catalog.Counter) (*salesapp.InvoiceResult, error) {
	result, err := g.gen.Generate(ctx, order, counter)
	if err != nil {
		return nil, err
	}
	return &salesapp.InvoiceResult{
		FileName:     result.FileName,
		URL:          result.URL,
		UsedFallback: result.UsedFallback,
	}, nil
}

// buildInvoiceGenerator wires the template engine, the shared storage
// and the headless browser. A missing browser is tolerated when the
// HTML fallback is enabled; the generator then always stores HTML.
func buildInvoiceGenerator(cfg *config.Config, storage *invoice.Storage, log *zap.Logger) (*invoiceGenerator, error) {
	engine, err := invoice.NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	renderer, err := invoice.NewChromedpRenderer(&invoice.ChromedpConfig{
		ExecPath:       cfg.Invoice.ChromePath,
		DefaultTimeout: cfg.Invoice.RenderTimeout,
		NoSandbox:      os.Getuid() == 0,
		Logger:         log,
	})
	if err != nil {
		if !cfg.Invoice.FallbackHTML {
			return nil, err
		}
		log.Warn("no usable browser found, invoices will be stored as HTML", zap.Error(err))
		renderer = nil
	}

	var pdfRenderer invoice.PDFRenderer
	if renderer != nil {
		pdfRenderer = renderer
	}
	return &invoiceGenerator{
		gen: invoice.NewGenerator(pdfRenderer, engine, storage, cfg.Invoice.FallbackHTML, log),
	}, nil
}
