package catalog

import (
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// CreateProductInput — данные для создания товара. Идентификатор и метки
// времени назначает сервис.
type CreateProductInput struct {
	Title         string
	Description   string
	PriceMinor    int64
	Type          domain.ProductType
	LibraryBookID *int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in CreateProductInput) Validate() error {
	if in.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if !in.Type.IsValid() {
		return domain.NewValidationError("type", "unknown product type")
	}
	if in.PriceMinor < 0 {
		return domain.NewValidationError("price", "must be >= 0")
	}
	return nil
}

// UpdateProductInput — полная замена изменяемых полей товара.
// Отсутствие поля во входе трактуется как его нулевое значение.
type UpdateProductInput struct {
	Title         string
	Description   string
	PriceMinor    int64
	Type          domain.ProductType
	LibraryBookID *int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in UpdateProductInput) Validate() error {
	return CreateProductInput{
		Title:      in.Title,
		Type:       in.Type,
		PriceMinor: in.PriceMinor,
	}.Validate()
}

// CreateOrderInput — данные для создания заказа. Итоговая сумма задаётся
// вызывающей стороной и не сверяется с позициями.
type CreateOrderInput struct {
	UserID           string
	Status           domain.OrderStatus
	TotalAmountMinor int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in CreateOrderInput) Validate() error {
	if in.UserID == "" {
		return domain.NewValidationError("userId", "is required")
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return domain.NewValidationError("userId", "must be a valid UUID")
	}
	if !in.Status.IsValid() {
		return domain.NewValidationError("status", "unknown order status")
	}
	if in.TotalAmountMinor < 0 {
		return domain.NewValidationError("totalAmount", "must be >= 0")
	}
	return nil
}

// UpdateOrderInput — полная замена изменяемых полей заказа.
type UpdateOrderInput struct {
	UserID           string
	Status           domain.OrderStatus
	TotalAmountMinor int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in UpdateOrderInput) Validate() error {
	return CreateOrderInput(in).Validate()
}

// CreateOrderItemInput — данные для создания позиции заказа.
// Существование заказа и товара по ссылкам не проверяется.
type CreateOrderItemInput struct {
	OrderID    string
	ProductID  string
	Quantity   int32
	PriceMinor int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in CreateOrderItemInput) Validate() error {
	if in.OrderID == "" {
		return domain.NewValidationError("orderId", "is required")
	}
	if in.ProductID == "" {
		return domain.NewValidationError("productId", "is required")
	}
	if in.Quantity < 0 {
		return domain.NewValidationError("quantity", "must be >= 0")
	}
	if in.PriceMinor < 0 {
		return domain.NewValidationError("price", "must be >= 0")
	}
	return nil
}

// UpdateOrderItemInput — полная замена изменяемых полей позиции заказа.
type UpdateOrderItemInput struct {
	OrderID    string
	ProductID  string
	Quantity   int32
	PriceMinor int64
}

// Validate возвращает первую найденную ошибку валидации.
func (in UpdateOrderItemInput) Validate() error {
	return CreateOrderItemInput(in).Validate()
}
