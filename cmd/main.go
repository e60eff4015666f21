package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"autoparts/internal/checkout"
	"autoparts/internal/config"
	"autoparts/internal/graphql"
	httpapi "autoparts/internal/http"
	"autoparts/internal/logging"
	"autoparts/internal/repository"
	"autoparts/internal/service"
	"autoparts/internal/telemetry"

	_ "autoparts/docs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	cfg.Log(log)

	ctx := context.Background()

	provider, err := telemetry.Setup(ctx, cfg.MetricsExporter, log)
	if err != nil {
		return err
	}
	metrics, err := telemetry.NewMetrics(provider.Meter("autoparts"))
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	if cfg.CatalogSeedPath != "" {
		n, err := repository.LoadCatalogYAML(ctx, store, cfg.CatalogSeedPath)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		log.Info("catalog seeded", zap.String("path", cfg.CatalogSeedPath), zap.Int("products", n))
	}

	var ordersRepo repository.OrderRepository = repository.NewMemoryOrders(store)
	if cfg.OrdersDatabaseURL != "" {
		db, err := repository.OpenPostgres(ctx, cfg.OrdersDatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := repository.NewPostgresOrders(db)
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate orders: %w", err)
		}
		ordersRepo = pg
		log.Info("orders are stored in postgres")
	}

	var (
		source    repository.OfferSource = store
		submitter checkout.OrderSubmitter
		ordersSvc *service.OrderService
	)
	switch cfg.OfferSource {
	case "graphql":
		client, err := graphql.New(cfg.GraphQLEndpoint, cfg.GraphQLToken, cfg.GraphQLTimeout, log)
		if err != nil {
			return fmt.Errorf("init graphql client: %w", err)
		}
		source, submitter = client, client
		log.Info("offers come from graphql backend", zap.String("endpoint", cfg.GraphQLEndpoint))
	default:
		ordersSvc = service.NewOrderService(store, ordersRepo, tx, log)
		submitter = ordersSvc
	}

	catalogSvc := service.NewCatalogService(store, source, store, service.CatalogOptions{
		Currency:           cfg.DefaultCurrency,
		AnalogsConcurrency: cfg.AnalogsConcurrency,
		CacheTTL:           cfg.OfferCacheTTL,
		Metrics:            metrics,
		Log:                log,
	})
	cartSvc := service.NewCartService(store, catalogSvc, tx, cfg.DeliveryPrice, metrics, log)
	checkoutSvc := service.NewCheckoutService(store, submitter, cfg.CheckoutSessionTTL, cfg.DefaultCurrency, metrics, log)

	srv := httpapi.NewServer(httpapi.Services{
		Catalog:  catalogSvc,
		Carts:    cartSvc,
		Orders:   ordersSvc,
		Checkout: checkoutSvc,
	}, log, metrics, provider.Handler())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown error", zap.Error(err))
	}
	return nil
}
