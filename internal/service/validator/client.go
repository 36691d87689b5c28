package validator

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

const validateTimeout = 3 * time.Second

// Client — gRPC-клиент валидации товаров каталога.
// Транспортная ошибка возвращается вызывающему как ошибка: семантика
// fail-closed реализуется на вызывающей стороне, которая обязана
// отклонить запись.
type Client struct {
	rpc    bookshopv1.ProductValidatorClient
	logger *log.Entry
}

// NewClient оборачивает существующее gRPC-подключение к каталогу.
func NewClient(conn grpc.ClientConnInterface, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "product-validator-client")
	}
	return &Client{
		rpc:    bookshopv1.NewProductValidatorClient(conn),
		logger: logger,
	}
}

// ValidateProduct возвращает true, если каталог подтвердил существование
// товара. Каждый вызов ограничен собственным таймаутом поверх входящего
// контекста.
func (c *Client) ValidateProduct(ctx context.Context, productID string) (bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	resp, err := c.rpc.ValidateProduct(callCtx, &bookshopv1.ValidateProductRequest{ProductID: productID})
	if err != nil {
		c.logger.WithError(err).WithField("product_id", productID).Warn("product validation call failed")
		return false, fmt.Errorf("validate product %s: %w", productID, err)
	}

	return resp.Valid, nil
}

var _ domain.ProductValidator = (*Client)(nil)
