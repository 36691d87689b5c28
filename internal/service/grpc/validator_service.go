package grpcsvc

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

// ValidatorService подтверждает существование товаров каталога для складских
// сервисов. В отличие от BookshopService, отказ хранилища здесь передаётся
// транспортным статусом: клиент обязан трактовать его как отказ (fail-closed),
// и статус UNAVAILABLE/INTERNAL делает это различие явным.
type ValidatorService struct {
	catalog *catalog.Service
	logger  *log.Entry
}

// NewValidatorService конструирует gRPC-сервис валидации.
func NewValidatorService(svc *catalog.Service, logger *log.Entry) *ValidatorService {
	if logger == nil {
		logger = log.WithField("component", "product-validator")
	}
	return &ValidatorService{catalog: svc, logger: logger}
}

// ValidateProduct возвращает true, если товар существует в каталоге.
func (s *ValidatorService) ValidateProduct(_ context.Context, req *bookshopv1.ValidateProductRequest) (*bookshopv1.ValidateProductResponse, error) {
	if req == nil || req.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	exists, err := s.catalog.ProductExists(req.ProductID)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", req.ProductID).Error("failed to check product existence")
		return nil, status.Error(codes.Internal, "failed to check product existence")
	}

	return &bookshopv1.ValidateProductResponse{Valid: exists}, nil
}

// GetProduct возвращает полный товар; используется складом для диагностики.
func (s *ValidatorService) GetProduct(_ context.Context, req *bookshopv1.GetProductRequest) (*bookshopv1.GetProductResponse, error) {
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
		return &bookshopv1.GetProductResponse{
			Success:      false,
			ErrorCode:    bookshopv1.ErrorCodeInternal,
			ErrorMessage: "product is not representable on wire",
		}, nil
	}

	return &bookshopv1.GetProductResponse{Product: wireProduct, Success: true}, nil
}

var _ bookshopv1.ProductValidatorServer = (*ValidatorService)(nil)
