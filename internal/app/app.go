package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	httpapi "github.com/hemantkumar00/product-category-service/internal/api/http"
	"github.com/hemantkumar00/product-category-service/internal/cache"
	healthcheck "github.com/hemantkumar00/product-category-service/internal/health"
	"github.com/hemantkumar00/product-category-service/internal/service/category"
	"github.com/hemantkumar00/product-category-service/internal/service/inventory"
	"github.com/hemantkumar00/product-category-service/internal/service/product"
	"github.com/hemantkumar00/product-category-service/internal/service/search"
	"github.com/hemantkumar00/product-category-service/internal/version"
)

// Run собирает сервис каталога и обслуживает запросы до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	productCache := cache.NewProductCache(deps.Cache)
	searchCache := cache.NewSearchResultCache(deps.Cache)

	coordinator := newCoordinator(deps, productCache)
	productSvc := newProductService(deps, productCache)
	categorySvc := category.NewService(deps.Categories, logger.WithField("component", "category"))
	searchSvc := search.NewService(deps.Products, searchCache, logger.WithField("component", "search"))

	healthHandler := healthcheck.NewHandler(version.String())
	if deps.store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiHandler := httpapi.NewHandler(productSvc, categorySvc, coordinator, searchSvc, logger.WithField("component", "http"))
	apiSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(apiHandler, healthHandler),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newCoordinator выбирает вариант координатора в зависимости от наличия Kafka.
func newCoordinator(deps *Dependencies, productCache *cache.ProductCache) *inventory.Coordinator {
	logger := deps.Logger.WithField("component", "inventory")
	if deps.Producer != nil {
		return inventory.NewCoordinatorWithPublisher(deps.Inventory, deps.Locks, productCache, deps.Producer, logger)
	}
	return inventory.NewCoordinator(deps.Inventory, deps.Locks, productCache, logger)
}

// newProductService выбирает вариант сервиса товаров в зависимости от наличия Kafka.
func newProductService(deps *Dependencies, productCache *cache.ProductCache) *product.Service {
	logger := deps.Logger.WithField("component", "product")
	if deps.Producer != nil {
		return product.NewServiceWithPublisher(deps.Products, deps.Categories, productCache, deps.Producer, logger)
	}
	return product.NewService(deps.Products, deps.Categories, productCache, logger)
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
