package kafka

import "time"

// EventType определяет тип события каталога.
type EventType string

const (
	// Product события
	EventTypeProductCreated EventType = "product.created"
	EventTypeProductUpdated EventType = "product.updated"
	EventTypeProductDeleted EventType = "product.deleted"

	// Order события
	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderUpdated EventType = "order.updated"
	EventTypeOrderDeleted EventType = "order.deleted"

	// OrderItem события
	EventTypeOrderItemCreated EventType = "order_item.created"
	EventTypeOrderItemUpdated EventType = "order_item.updated"
	EventTypeOrderItemDeleted EventType = "order_item.deleted"
)

// Topics для Kafka. Поток событий — best-effort расширение: склад может
// использовать его для сверки осиротевших записей, но синхронная валидация
// через gRPC остаётся единственной гарантией на пути записи.
const (
	TopicProductEvents = "bookshop.product.events"
	TopicOrderEvents   = "bookshop.order.events"
)

// EntityEvent представляет событие жизненного цикла сущности каталога.
type EntityEvent struct {
	EventType EventType `json:"event_type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntityEvent создаёт новое событие сущности.
func NewEntityEvent(eventType EventType, entityID string) *EntityEvent {
	return &EntityEvent{
		EventType: eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
