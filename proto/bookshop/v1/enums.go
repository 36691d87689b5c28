// Пакет bookshopv1 содержит ручную реализацию wire-контракта bookshop.proto:
// сообщения кодируются через protowire, коды enum заданы явными таблицами.
// Вывод кода из хеша имени значения запрещён: такая схема не стабильна и
// не инъективна, что ломает round-trip кодирования.
package bookshopv1

import "fmt"

// ProductType — wire-код категории товара. Таблица фиксирована контрактом.
type ProductType int32

const (
	ProductTypeBook         ProductType = 0
	ProductTypeDigitalBook  ProductType = 1
	ProductTypePhysicalGood ProductType = 2
	ProductTypeDigitalGood  ProductType = 3
)

// ProductTypeValues перечисляет все коды контракта в фиксированном порядке.
func ProductTypeValues() []ProductType {
	return []ProductType{ProductTypeBook, ProductTypeDigitalBook, ProductTypePhysicalGood, ProductTypeDigitalGood}
}

// IsValid сообщает, определён ли код в контракте.
func (t ProductType) IsValid() bool {
	return t >= ProductTypeBook && t <= ProductTypeDigitalGood
}

func (t ProductType) String() string {
	switch t {
	case ProductTypeBook:
		return "PRODUCT_TYPE_BOOK"
	case ProductTypeDigitalBook:
		return "PRODUCT_TYPE_DIGITAL_BOOK"
	case ProductTypePhysicalGood:
		return "PRODUCT_TYPE_PHYSICAL_GOOD"
	case ProductTypeDigitalGood:
		return "PRODUCT_TYPE_DIGITAL_GOOD"
	default:
		return fmt.Sprintf("PRODUCT_TYPE_UNKNOWN(%d)", int32(t))
	}
}

// OrderStatus — wire-код статуса заказа.
type OrderStatus int32

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusCompleted OrderStatus = 1
	OrderStatusCancelled OrderStatus = 2
)

// OrderStatusValues перечисляет все коды контракта в фиксированном порядке.
func OrderStatusValues() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
}

// IsValid сообщает, определён ли код в контракте.
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusPending && s <= OrderStatusCancelled
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "ORDER_STATUS_PENDING"
	case OrderStatusCompleted:
		return "ORDER_STATUS_COMPLETED"
	case OrderStatusCancelled:
		return "ORDER_STATUS_CANCELLED"
	default:
		return fmt.Sprintf("ORDER_STATUS_UNKNOWN(%d)", int32(s))
	}
}

// ErrorCode — структурированный код ошибки в ответах бинарного RPC.
// Дополняет свободный текст error_message, сохраняя флаг success.
type ErrorCode int32

const (
	ErrorCodeOK              ErrorCode = 0
	ErrorCodeNotFound        ErrorCode = 1
	ErrorCodeInvalidArgument ErrorCode = 2
	ErrorCodeInternal        ErrorCode = 3
	ErrorCodeUnavailable     ErrorCode = 4
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeOK:
		return "ERROR_CODE_OK"
	case ErrorCodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case ErrorCodeInvalidArgument:
		return "ERROR_CODE_INVALID_ARGUMENT"
	case ErrorCodeInternal:
		return "ERROR_CODE_INTERNAL"
	case ErrorCodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	default:
		return fmt.Sprintf("ERROR_CODE_UNKNOWN(%d)", int32(c))
	}
}
