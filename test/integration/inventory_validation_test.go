package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/bookshop/internal/service/grpc"
	"github.com/vladislavdragonenkov/bookshop/internal/service/inventory"
	"github.com/vladislavdragonenkov/bookshop/internal/service/rest"
	"github.com/vladislavdragonenkov/bookshop/internal/service/validator"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

const bufSize = 1024 * 1024

// InventoryValidationTestSuite проверяет сквозной контур склада и каталога:
// REST-мутации склада подтверждают существование товара через бинарный RPC.
type InventoryValidationTestSuite struct {
	suite.Suite
	catalog    *catalog.Service
	grpcServer *grpc.Server
	conn       *grpc.ClientConn
	workshop   *httptest.Server
}

func (s *InventoryValidationTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	s.catalog = catalog.NewService(
		memory.NewProductRepository(),
		memory.NewOrderRepository(),
		memory.NewOrderItemRepository(),
		nil,
		nil,
		logger,
	)

	listener := bufconn.Listen(bufSize)
	s.grpcServer = grpc.NewServer()
	bookshopv1.RegisterBookshopServiceServer(s.grpcServer, grpcsvc.NewBookshopService(s.catalog, logger))
	bookshopv1.RegisterProductValidatorServer(s.grpcServer, grpcsvc.NewValidatorService(s.catalog, logger))
	go func() {
		_ = s.grpcServer.Serve(listener)
	}()

	dialer := func(context.Context, string) (net.Conn, error) {
		return listener.Dial()
	}
	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet", grpc.WithContextDialer(dialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	s.conn = conn

	productValidator := validator.NewClient(conn, logger)
	physical := inventory.NewPhysicalService(memory.NewPhysicalInventoryRepository(), productValidator, logger)
	digital := inventory.NewDigitalService(memory.NewDigitalInventoryRepository(), productValidator, logger)

	mux := http.NewServeMux()
	rest.NewHandler(physical, digital, nil, logger).RegisterRoutes(mux)
	s.workshop = httptest.NewServer(mux)
}

func (s *InventoryValidationTestSuite) TearDownTest() {
	s.workshop.Close()
	_ = s.conn.Close()
	s.grpcServer.Stop()
}

func (s *InventoryValidationTestSuite) createProduct(title string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := bookshopv1.NewBookshopServiceClient(s.conn)
	resp, err := client.CreateProduct(ctx, &bookshopv1.CreateProductRequest{
		Title:       title,
		PriceMinor:  1999,
		ProductType: bookshopv1.ProductTypePhysicalGood,
	})
	s.Require().NoError(err)
	s.Require().True(resp.Success)
	s.Require().NotNil(resp.Product)
	return resp.Product.ProductID
}

func (s *InventoryValidationTestSuite) postJSON(path string, payload any) *http.Response {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	resp, err := http.Post(s.workshop.URL+path, "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *InventoryValidationTestSuite) TestInventoryAcceptedForExistingProduct() {
	productID := s.createProduct("Настольная лампа")

	resp := s.postJSON("/api/physical-inventory", map[string]any{
		"productId": productID,
		"stock":     10,
		"location":  "A-1",
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/physical-inventory/%s", s.workshop.URL, productID))
	s.Require().NoError(err)
	defer getResp.Body.Close()
	s.Require().Equal(http.StatusOK, getResp.StatusCode)
}

func (s *InventoryValidationTestSuite) TestInventoryRejectedForUnknownProduct() {
	resp := s.postJSON("/api/physical-inventory", map[string]any{
		"productId": "unknown-product",
		"stock":     1,
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Contains(body, "message")
}

func (s *InventoryValidationTestSuite) TestInventoryRejectedAfterProductDeleted() {
	productID := s.createProduct("Электронная книга")

	deleted, err := s.catalog.DeleteProduct(productID)
	s.Require().NoError(err)
	s.Require().True(deleted)

	resp := s.postJSON("/api/digital-inventory", map[string]any{
		"productId":     productID,
		"digitalFile":   "book.epub",
		"licensesTotal": 100,
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *InventoryValidationTestSuite) TestInventoryFailsClosedWhenCatalogDown() {
	productID := s.createProduct("Чайник")

	// Останавливаем каталог: валидация должна отклонить мутацию,
	// а не пропустить её.
	s.grpcServer.Stop()

	resp := s.postJSON("/api/physical-inventory", map[string]any{
		"productId": productID,
		"stock":     5,
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestInventoryValidationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryValidationTestSuite))
}
