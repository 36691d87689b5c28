package domain

import "context"

// LibraryClient запрашивает запись книги во внешней библиографической системе.
type LibraryClient interface {
	// GetBookByID возвращает запись или nil, если книга не найдена либо
	// система недоступна. Ошибка наружу не распространяется: для чтений
	// недоступность библиотеки деградирует до "обогащение недоступно".
	GetBookByID(ctx context.Context, id int64) *BookRecord
}

// ProductValidator подтверждает существование товара в каталоге.
// Используется складскими сервисами перед каждой записью.
type ProductValidator interface {
	// ValidateProduct возвращает true, если товар существует.
	// Транспортная ошибка возвращается вызывающему: он обязан трактовать её
	// как отказ (fail-closed), а не как подтверждение.
	ValidateProduct(ctx context.Context, productID string) (bool, error)
}

// EventPublisher публикует события жизненного цикла сущностей каталога.
// Публикация best-effort: ошибка логируется и не отменяет мутацию.
type EventPublisher interface {
	Publish(topic, key string, event any) error
}
