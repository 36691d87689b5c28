package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказа нет в каталоге.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound возвращается, если позиции заказа нет в каталоге.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrInventoryNotFound возвращается, если складской записи нет.
	ErrInventoryNotFound = errors.New("inventory record not found")
	// ErrProductAlreadyExists возвращается при попытке создать запись с занятым ID.
	ErrProductAlreadyExists = errors.New("product already exists")
	// ErrOrderAlreadyExists возвращается при попытке создать запись с занятым ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOrderItemAlreadyExists возвращается при попытке создать запись с занятым ID.
	ErrOrderItemAlreadyExists = errors.New("order item already exists")
)

// ValidationError — нарушение формата или отсутствие обязательного поля
// во входных данных мутации. Проверяется до любого обращения к хранилищу.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q: %s", e.Field, e.Reason)
}

// NewValidationError создаёт ошибку валидации для поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation проверяет, является ли ошибка ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReferentialIntegrityError — ссылка на отсутствующий товар каталога.
// Возвращается и при недоступности валидатора: запись отклоняется так же,
// как при явном "not found" (fail-closed).
type ReferentialIntegrityError struct {
	ProductID string
	// Cause хранит транспортную ошибку валидатора, если отказ вызван ею.
	Cause error
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("product %s cannot be confirmed in bookshop: %v", e.ProductID, e.Cause)
	}
	return fmt.Sprintf("product %s does not exist in bookshop", e.ProductID)
}

func (e *ReferentialIntegrityError) Unwrap() error { return e.Cause }

// IsReferentialIntegrity проверяет, является ли ошибка отказом ссылочной целостности.
func IsReferentialIntegrity(err error) bool {
	var re *ReferentialIntegrityError
	return errors.As(err, &re)
}

// RequestShapeError — несовпадение идентификатора в пути запроса и в теле.
// Ортогональна проверке ссылочной целостности и выполняется раньше неё.
type RequestShapeError struct {
	PathID string
	BodyID string
}

func (e *RequestShapeError) Error() string {
	return fmt.Sprintf("product id in body (%s) does not match path parameter (%s)", e.BodyID, e.PathID)
}

// IsRequestShape проверяет, является ли ошибка ошибкой формы запроса.
func IsRequestShape(err error) bool {
	var se *RequestShapeError
	return errors.As(err, &se)
}
