package grpcsvc

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

// BookshopService реализует бинарный RPC каталога поверх прикладного сервиса.
// Прикладные отказы передаются внутри ответа (success=false + error_code),
// транспортный статус gRPC остаётся OK.
type BookshopService struct {
	bookshopv1.UnimplementedBookshopServiceServer

	catalog *catalog.Service
	logger  *log.Entry
}

// NewBookshopService конструирует gRPC-фасад каталога.
func NewBookshopService(svc *catalog.Service, logger *log.Entry) *BookshopService {
	if logger == nil {
		logger = log.WithField("component", "bookshop-grpc")
	}
	return &BookshopService{catalog: svc, logger: logger}
}

// GetProduct возвращает товар по идентификатору.
func (s *BookshopService) GetProduct(_ context.Context, req *bookshopv1.GetProductRequest) (*bookshopv1.GetProductResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	product, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		code, msg := classifyError(err)
		return &bookshopv1.GetProductResponse{Success: false, ErrorCode: code, ErrorMessage: msg}, nil
	}

	wireProduct, err := toWireProduct(product)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Error("product is not representable on wire")
		return &bookshopv1.GetProductResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInternal,
			ErrorMessage: "product is not representable on wire",
		}, nil
	}

	return &bookshopv1.GetProductResponse{Product: wireProduct, Success: true}, nil
}

// CreateProduct создаёт товар. Неизвестный wire-код типа отклоняется
// как INVALID_ARGUMENT до обращения к прикладному сервису.
func (s *BookshopService) CreateProduct(_ context.Context, req *bookshopv1.CreateProductRequest) (*bookshopv1.CreateProductResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	productType, err := productTypeFromWire(req.ProductType)
	if err != nil {
		return &bookshopv1.CreateProductResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInvalidArgument,
			ErrorMessage: err.Error(),
		}, nil
	}

	product, err := s.catalog.CreateProduct(catalog.CreateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		PriceMinor:    req.PriceMinor,
		Type:          productType,
		LibraryBookID: req.LibraryBookID,
	})
	if err != nil {
		code, msg := classifyError(err)
		return &bookshopv1.CreateProductResponse{Success: false, ErrorCode: code, ErrorMessage: msg}, nil
	}

	wireProduct, err := toWireProduct(product)
	if err != nil {
		return &bookshopv1.CreateProductResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInternal,
			ErrorMessage: "product is not representable on wire",
		}, nil
	}

	return &bookshopv1.CreateProductResponse{Product: wireProduct, Success: true}, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *BookshopService) GetOrder(_ context.Context, req *bookshopv1.GetOrderRequest) (*bookshopv1.GetOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	order, err := s.catalog.GetOrder(req.OrderID)
	if err != nil {
		code, msg := classifyError(err)
		return &bookshopv1.GetOrderResponse{Success: false, ErrorCode: code, ErrorMessage: msg}, nil
	}

	wireOrder, err := toWireOrder(order)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("order is not representable on wire")
		return &bookshopv1.GetOrderResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInternal,
			ErrorMessage: "order is not representable on wire",
		}, nil
	}

	return &bookshopv1.GetOrderResponse{Order: wireOrder, Success: true}, nil
}

// CreateOrder создаёт заказ.
func (s *BookshopService) CreateOrder(_ context.Context, req *bookshopv1.CreateOrderRequest) (*bookshopv1.CreateOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	orderStatus, err := orderStatusFromWire(req.Status)
	if err != nil {
		return &bookshopv1.CreateOrderResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInvalidArgument,
			ErrorMessage: err.Error(),
		}, nil
	}

	order, err := s.catalog.CreateOrder(catalog.CreateOrderInput{
		UserID:           req.UserID,
		Status:           orderStatus,
		TotalAmountMinor: req.TotalAmountMinor,
	})
	if err != nil {
		code, msg := classifyError(err)
		return &bookshopv1.CreateOrderResponse{Success: false, ErrorCode: code, ErrorMessage: msg}, nil
	}

	wireOrder, err := toWireOrder(order)
	if err != nil {
		return &bookshopv1.CreateOrderResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInternal,
			ErrorMessage: "order is not representable on wire",
		}, nil
	}

	return &bookshopv1.CreateOrderResponse{Order: wireOrder, Success: true}, nil
}

// GetBookFromLibrary проксирует запрос в библиографическую систему.
// Недоступность библиотеки и отсутствие книги неразличимы для вызывающего:
// обе деградируют до NOT_FOUND.
func (s *BookshopService) GetBookFromLibrary(ctx context.Context, req *bookshopv1.GetBookFromLibraryRequest) (*bookshopv1.GetBookFromLibraryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	book := s.catalog.GetBook(ctx, req.BookID)
	if book == nil {
		return &bookshopv1.GetBookFromLibraryResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeNotFound,
			ErrorMessage: "book not found in library",
		}, nil
	}

	return &bookshopv1.GetBookFromLibraryResponse{Book: toWireBook(book), Success: true}, nil
}

// classifyError переводит прикладную ошибку в структурированный код ответа.
func classifyError(err error) (bookshopv1.ErrorCode, string) {
	switch {
	case domain.IsValidation(err):
		return bookshopv1.ErrorCodeInvalidArgument, err.Error()
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrOrderItemNotFound):
		return bookshopv1.ErrorCodeNotFound, err.Error()
	default:
		return bookshopv1.ErrorCodeInternal, "internal error"
	}
}

var _ bookshopv1.BookshopServiceServer = (*BookshopService)(nil)
