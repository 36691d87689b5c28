package grpcsvc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/bookshop/internal/service/grpc"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

const bufSize = 1024 * 1024

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func newTestServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	listener := bufconn.Listen(bufSize)
	logger := loggerForTests()
	svc := catalog.NewService(
		memory.NewProductRepository(),
		memory.NewOrderRepository(),
		memory.NewOrderItemRepository(),
		nil,
		nil,
		logger,
	)

	server := grpc.NewServer()
	bookshopv1.RegisterBookshopServiceServer(server, grpcsvc.NewBookshopService(svc, logger))
	bookshopv1.RegisterProductValidatorServer(server, grpcsvc.NewValidatorService(svc, logger))

	go func() {
		if err := server.Serve(listener); err != nil {
			logger.WithError(err).Error("grpc serve failed")
		}
	}()

	dialer := func(context.Context, string) (net.Conn, error) {
		return listener.Dial()
	}

	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet", grpc.WithContextDialer(dialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})

	return conn
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCreateAndGetProductOverWire(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)
	ctx := testCtx(t)

	libraryBookID := int64(7)
	created, err := client.CreateProduct(ctx, &bookshopv1.CreateProductRequest{
		Title:         "Dune",
		Description:   "Classic science fiction",
		PriceMinor:    1999,
		ProductType:   bookshopv1.ProductTypeBook,
		LibraryBookID: &libraryBookID,
	})
	require.NoError(t, err)
	require.True(t, created.Success)
	require.Equal(t, bookshopv1.ErrorCodeOK, created.ErrorCode)
	require.NotNil(t, created.Product)
	require.NotEmpty(t, created.Product.ProductID)

	got, err := client.GetProduct(ctx, &bookshopv1.GetProductRequest{ProductID: created.Product.ProductID})
	require.NoError(t, err)
	require.True(t, got.Success)
	require.Equal(t, created.Product.ProductID, got.Product.ProductID)
	require.Equal(t, bookshopv1.ProductTypeBook, got.Product.ProductType)
	require.NotNil(t, got.Product.LibraryBookID)
	require.Equal(t, int64(7), *got.Product.LibraryBookID)
}

func TestGetProductNotFoundIsInBand(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)

	// Прикладной отказ: транспортный статус OK, ошибка внутри ответа.
	resp, err := client.GetProduct(testCtx(t), &bookshopv1.GetProductRequest{ProductID: "missing"})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, bookshopv1.ErrorCodeNotFound, resp.ErrorCode)
	require.Nil(t, resp.Product)
	require.NotEmpty(t, resp.ErrorMessage)
}

func TestCreateProductRejectsUnknownTypeCode(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)

	resp, err := client.CreateProduct(testCtx(t), &bookshopv1.CreateProductRequest{
		Title:       "Mystery",
		PriceMinor:  100,
		ProductType: bookshopv1.ProductType(99),
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, bookshopv1.ErrorCodeInvalidArgument, resp.ErrorCode)
}

func TestCreateProductValidatesInput(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)

	resp, err := client.CreateProduct(testCtx(t), &bookshopv1.CreateProductRequest{
		Title:       "",
		PriceMinor:  100,
		ProductType: bookshopv1.ProductTypeBook,
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, bookshopv1.ErrorCodeInvalidArgument, resp.ErrorCode)
}

func TestCreateAndGetOrderOverWire(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)
	ctx := testCtx(t)

	created, err := client.CreateOrder(ctx, &bookshopv1.CreateOrderRequest{
		UserID:           "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
		Status:           bookshopv1.OrderStatusPending,
		TotalAmountMinor: 1999,
	})
	require.NoError(t, err)
	require.True(t, created.Success)
	require.NotNil(t, created.Order)

	got, err := client.GetOrder(ctx, &bookshopv1.GetOrderRequest{OrderID: created.Order.OrderID})
	require.NoError(t, err)
	require.True(t, got.Success)
	require.Equal(t, bookshopv1.OrderStatusPending, got.Order.Status)
	require.Equal(t, int64(1999), got.Order.TotalAmountMinor)
}

func TestCreateOrderRejectsUnknownStatusCode(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)

	resp, err := client.CreateOrder(testCtx(t), &bookshopv1.CreateOrderRequest{
		UserID:           "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
		Status:           bookshopv1.OrderStatus(77),
		TotalAmountMinor: 100,
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, bookshopv1.ErrorCodeInvalidArgument, resp.ErrorCode)
}

func TestGetBookFromLibraryWithoutLibraryDegrades(t *testing.T) {
	conn := newTestServer(t)
	client := bookshopv1.NewBookshopServiceClient(conn)

	resp, err := client.GetBookFromLibrary(testCtx(t), &bookshopv1.GetBookFromLibraryRequest{BookID: 42})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, bookshopv1.ErrorCodeNotFound, resp.ErrorCode)
	require.Nil(t, resp.Book)
}

func TestValidateProductReflectsCatalog(t *testing.T) {
	conn := newTestServer(t)
	bookshop := bookshopv1.NewBookshopServiceClient(conn)
	validator := bookshopv1.NewProductValidatorClient(conn)
	ctx := testCtx(t)

	created, err := bookshop.CreateProduct(ctx, &bookshopv1.CreateProductRequest{
		Title:       "Dune",
		PriceMinor:  1999,
		ProductType: bookshopv1.ProductTypeBook,
	})
	require.NoError(t, err)
	require.True(t, created.Success)

	resp, err := validator.ValidateProduct(ctx, &bookshopv1.ValidateProductRequest{ProductID: created.Product.ProductID})
	require.NoError(t, err)
	require.True(t, resp.Valid)

	resp, err = validator.ValidateProduct(ctx, &bookshopv1.ValidateProductRequest{ProductID: "missing"})
	require.NoError(t, err)
	require.False(t, resp.Valid)
}
