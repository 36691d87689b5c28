package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в каталоге.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, но ещё не завершён.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusCompleted — заказ выполнен.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses перечисляет все допустимые статусы в фиксированном порядке.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
}

// IsValid сообщает, входит ли значение в множество допустимых статусов.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order — заказ каталога.
// TotalAmountMinor задаётся вызывающей стороной и не пересчитывается из позиций —
// это зафиксированный пробел поведения, а не упущение реализации.
type Order struct {
	ID               string
	UserID           string
	Status           OrderStatus
	TotalAmountMinor int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem — позиция заказа. Ссылается на заказ и товар по идентификаторам;
// существование ссылок при записи не проверяется, удаление заказа/товара
// не каскадируется на позиции.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int32
	PriceMinor int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
