package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/config"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	if cfg.APIKey == "" && cfg.APIKeyHash == "" {
		logger.Warn("no API key configured, every product request will be rejected")
	}

	// --- Repository ---
	nextID, err := repositories.IDGeneratorFor(cfg.IDStrategy)
	if err != nil {
		return err
	}
	productRepo, err := repositories.NewProductRepository(cfg.StoreDriver, cfg.DatabaseDSN, nextID)
	if err != nil {
		return err
	}
	if cfg.SeedProducts {
		seedProducts(productRepo, logger)
	}

	// --- Product events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, logger)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		events = mqClient

		if cfg.EventsAudit {
			if err := mqClient.ConsumeProductEvents(rabbitmq.AuditLogger(logger)); err != nil {
				logger.Error("failed to start product event consumer", "error", err)
			}
		}
	}

	// --- Service and HTTP app ---
	productService := services.NewProductService(productRepo, events, logger)
	app := NewApp(cfg, productService, logger, os.Stdout)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", cfg.Addr(), "store", cfg.StoreDriver, "id_strategy", cfg.IDStrategy)
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during fiber shutdown", "error", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// sampleProducts are loaded into an empty store at startup.
var sampleProducts = []models.ProductDraft{
	{Name: "Laptop", Description: "High-performance laptop with 16GB RAM", Price: 1200, Category: "electronics", InStock: true},
	{Name: "Smartphone", Description: "Latest model with 128GB storage", Price: 800, Category: "electronics", InStock: true},
	{Name: "Coffee Maker", Description: "Programmable coffee maker with timer", Price: 50, Category: "kitchen", InStock: false},
}

// seedProducts populates an empty repository with the sample catalog.
// Seeding goes straight to the repository, so the out-of-stock sample is kept.
func seedProducts(repo repositories.ProductRepository, logger *slog.Logger) {
	count, err := repo.Count()
	if err != nil {
		logger.Error("failed to count products before seeding", "error", err)
		return
	}
	if count > 0 {
		logger.Info("store already holds products, skipping seed", "count", count)
		return
	}

	for _, draft := range sampleProducts {
		product, err := repo.Append(draft)
		if err != nil {
			logger.Error("failed to seed product", "name", draft.Name, "error", err)
			continue
		}
		logger.Debug("seeded product", "name", product.Name, "id", product.ID)
	}
}
