package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	gql "github.com/vladislavdragonenkov/bookshop/internal/graphql"
	healthcheck "github.com/vladislavdragonenkov/bookshop/internal/health"
	"github.com/vladislavdragonenkov/bookshop/internal/library"
	"github.com/vladislavdragonenkov/bookshop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/bookshop/internal/metrics"
	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/bookshop/internal/service/grpc"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/postgres"
	"github.com/vladislavdragonenkov/bookshop/internal/version"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

// RunBookshop поднимает сервис каталога: GraphQL API, бинарный RPC
// (BookshopService + ProductValidator) и сервер метрик. Блокируется до
// отмены ctx либо фатальной ошибки одного из серверов.
func RunBookshop(ctx context.Context, cfg BookshopConfig) error {
	logger := log.WithField("component", "bookshop-app")

	var (
		products domain.ProductRepository
		orders   domain.OrderRepository
		items    domain.OrderItemRepository
		store    *postgres.Store
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
		products = postgres.NewProductRepository(store)
		orders = postgres.NewOrderRepository(store)
		items = postgres.NewOrderItemRepository(store)
		logger.Info("каталог использует PostgreSQL-хранилище")
	} else {
		products = memory.NewProductRepository()
		orders = memory.NewOrderRepository()
		items = memory.NewOrderItemRepository()
		logger.Info("каталог использует in-memory хранилище")
	}
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()

	catalogMetrics := metrics.NewCatalogMetrics()

	var libraryClient domain.LibraryClient
	if cfg.LibraryURL != "" {
		libraryClient = library.NewClient(cfg.LibraryURL, catalogMetrics, logger.WithField("layer", "library"))
		logger.WithField("url", cfg.LibraryURL).Info("подключение к библиографической системе включено")
	}

	// Инициализация Kafka producer (опционально)
	var kafkaProducer *kafka.Producer
	var events domain.EventPublisher
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			events = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	svc := catalog.NewService(products, orders, items, libraryClient, events, logger.WithField("layer", "service"))

	schema, err := gql.NewSchema(svc)
	if err != nil {
		return err
	}
	gqlHandler := gql.NewHandler(schema, catalogMetrics, logger.WithField("layer", "graphql"))
	httpMux := http.NewServeMux()
	httpMux.Handle("/graphql", gqlHandler)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpMux}

	serviceLogger := logger.WithField("layer", "grpc")
	bookshopService := grpcsvc.NewBookshopService(svc, serviceLogger)
	validatorService := grpcsvc.NewValidatorService(svc, serviceLogger)

	grpcMetrics := promgrpc.NewServerMetrics()
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	if err := prometheus.Register(grpcMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ServerMetrics); ok2 {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	bookshopv1.RegisterBookshopServiceServer(grpcServer, bookshopService)
	bookshopv1.RegisterProductValidatorServer(grpcServer, validatorService)
	grpcMetrics.InitializeMetrics(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewFuncChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("gRPC сервер слушает %s", cfg.GRPCAddr)
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		logger.Infof("GraphQL API слушает %s/graphql", cfg.HTTPAddr)
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	cleanup := func() {
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		if kafkaProducer != nil {
			if closeErr := kafkaProducer.Close(); closeErr != nil {
				logger.WithError(closeErr).Warn("failed to close kafka producer")
			} else {
				logger.Info("kafka producer closed")
			}
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем gRPC сервер")
		stoppedCh := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			close(stoppedCh)
		}()
		select {
		case <-stoppedCh:
		case <-time.After(5 * time.Second):
			logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
			grpcServer.Stop()
		}
		cleanup()
		return ctx.Err()
	case err := <-errCh:
		grpcServer.Stop()
		cleanup()
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}
