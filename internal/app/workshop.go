package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/bookshop/internal/health"
	"github.com/vladislavdragonenkov/bookshop/internal/metrics"
	"github.com/vladislavdragonenkov/bookshop/internal/service/inventory"
	"github.com/vladislavdragonenkov/bookshop/internal/service/rest"
	"github.com/vladislavdragonenkov/bookshop/internal/service/validator"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/postgres"
	"github.com/vladislavdragonenkov/bookshop/internal/version"
)

// RunWorkshop поднимает складской сервис: REST API и сервер метрик.
// Валидация товаров идёт через gRPC-соединение с каталогом; соединение
// ленивое, недоступность каталога проявляется как отказ мутаций, а не
// падение при старте. Блокируется до отмены ctx либо фатальной ошибки.
func RunWorkshop(ctx context.Context, cfg WorkshopConfig) error {
	logger := log.WithField("component", "workshop-app")

	var (
		physicalRepo domain.PhysicalInventoryRepository
		digitalRepo  domain.DigitalInventoryRepository
		store        *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		st, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			_ = st.Close()
			return err
		}
		store = st
		physicalRepo = postgres.NewPhysicalInventoryRepository(store)
		digitalRepo = postgres.NewDigitalInventoryRepository(store)
		logger.Info("склад использует PostgreSQL-хранилище")
	} else {
		physicalRepo = memory.NewPhysicalInventoryRepository()
		digitalRepo = memory.NewDigitalInventoryRepository()
		logger.Info("склад использует in-memory хранилище")
	}
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()

	clientMetrics := promgrpc.NewClientMetrics()
	if err := prometheus.Register(clientMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ClientMetrics); ok2 {
				clientMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc client metrics")
		}
	}

	conn, err := grpc.NewClient(
		cfg.ValidatorAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(clientMetrics.UnaryClientInterceptor()),
	)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	logger.WithField("addr", cfg.ValidatorAddr).Info("валидатор каталога подключён")

	productValidator := validator.NewClient(conn, logger.WithField("layer", "validator"))
	physicalSvc := inventory.NewPhysicalService(physicalRepo, productValidator, logger.WithField("layer", "service"))
	digitalSvc := inventory.NewDigitalService(digitalRepo, productValidator, logger.WithField("layer", "service"))

	workshopMetrics := metrics.NewWorkshopMetrics()
	handler := rest.NewHandler(physicalSvc, digitalSvc, workshopMetrics, logger.WithField("layer", "rest"))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewFuncChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}
	// Недоступный каталог деградирует сервис (мутации отклоняются),
	// но чтение склада продолжает работать, readiness остаётся OK.
	healthHandler.RegisterChecker("catalog-grpc", healthcheck.NewOptionalChecker("catalog-grpc", func() error {
		state := conn.GetState()
		if state == connectivity.TransientFailure || state == connectivity.Shutdown {
			return fmt.Errorf("grpc connection state: %s", state)
		}
		return nil
	}))

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("REST API склада слушает %s", cfg.HTTPAddr)
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		return err
	}
}
