package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/messaging/kafka"
)

// Service — прикладная логика каталога. Оба транспортных фасада
// (GraphQL и gRPC) делегируют сюда, поэтому поведение мутаций и чтений
// у них совпадает по построению.
type Service struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	items    domain.OrderItemRepository
	library  domain.LibraryClient
	events   domain.EventPublisher
	logger   *log.Entry
}

// NewService конструирует сервис каталога. library и events опциональны:
// nil отключает обогащение из библиотеки и публикацию событий соответственно.
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	library domain.LibraryClient,
	events domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{
		products: products,
		orders:   orders,
		items:    items,
		library:  library,
		events:   events,
		logger:   logger,
	}
}

// ListProducts возвращает все товары каталога.
func (s *Service) ListProducts() ([]domain.Product, error) {
	return s.products.List()
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.NewValidationError("id", "is required")
	}
	return s.products.Get(id)
}

// CreateProduct валидирует вход и сохраняет новый товар.
func (s *Service) CreateProduct(in CreateProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		PriceMinor:    in.PriceMinor,
		Type:          in.Type,
		LibraryBookID: in.LibraryBookID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(product); err != nil {
		return domain.Product{}, err
	}

	s.publish(kafka.TopicProductEvents, kafka.EventTypeProductCreated, product.ID)
	return product, nil
}

// UpdateProduct полностью заменяет изменяемые поля существующего товара.
// Идентификатор и createdAt сохраняются.
func (s *Service) UpdateProduct(id string, in UpdateProductInput) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.NewValidationError("id", "is required")
	}
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.PriceMinor = in.PriceMinor
	existing.Type = in.Type
	existing.LibraryBookID = in.LibraryBookID
	existing.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(existing); err != nil {
		return domain.Product{}, err
	}

	s.publish(kafka.TopicProductEvents, kafka.EventTypeProductUpdated, existing.ID)
	return existing, nil
}

// DeleteProduct удаляет товар. Возвращает false, если записи не было.
// Складские записи соседнего сервиса при этом не трогаются.
func (s *Service) DeleteProduct(id string) (bool, error) {
	if id == "" {
		return false, domain.NewValidationError("id", "is required")
	}

	deleted, err := s.products.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(kafka.TopicProductEvents, kafka.EventTypeProductDeleted, id)
	}

	return deleted, nil
}

// ProductExists проверяет наличие товара без его загрузки.
func (s *Service) ProductExists(id string) (bool, error) {
	if id == "" {
		return false, domain.NewValidationError("id", "is required")
	}
	return s.products.Exists(id)
}

// GetProductWithBookInfo возвращает товар и, для бумажных книг с заполненной
// ссылкой, запись из библиографической системы. Недоступность библиотеки
// деградирует до nil-записи и не считается ошибкой.
func (s *Service) GetProductWithBookInfo(ctx context.Context, id string) (domain.Product, *domain.BookRecord, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return domain.Product{}, nil, err
	}

	var book *domain.BookRecord
	if product.Type == domain.ProductTypeBook && product.LibraryBookID != nil && s.library != nil {
		book = s.library.GetBookByID(ctx, *product.LibraryBookID)
	}

	return product, book, nil
}

// GetBook запрашивает запись книги напрямую в библиографической системе.
func (s *Service) GetBook(ctx context.Context, id int64) *domain.BookRecord {
	if s.library == nil {
		return nil
	}
	return s.library.GetBookByID(ctx, id)
}

// ListOrders возвращает все заказы.
func (s *Service) ListOrders() ([]domain.Order, error) {
	return s.orders.List()
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.NewValidationError("id", "is required")
	}
	return s.orders.Get(id)
}

// CreateOrder валидирует вход и сохраняет новый заказ.
func (s *Service) CreateOrder(in CreateOrderInput) (domain.Order, error) {
	if err := in.Validate(); err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:               uuid.NewString(),
		UserID:           in.UserID,
		Status:           in.Status,
		TotalAmountMinor: in.TotalAmountMinor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.orders.Create(order); err != nil {
		return domain.Order{}, err
	}

	s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderCreated, order.ID)
	return order, nil
}

// UpdateOrder полностью заменяет изменяемые поля существующего заказа.
func (s *Service) UpdateOrder(id string, in UpdateOrderInput) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.NewValidationError("id", "is required")
	}
	if err := in.Validate(); err != nil {
		return domain.Order{}, err
	}

	existing, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}

	existing.UserID = in.UserID
	existing.Status = in.Status
	existing.TotalAmountMinor = in.TotalAmountMinor
	existing.UpdatedAt = time.Now().UTC()

	if err := s.orders.Update(existing); err != nil {
		return domain.Order{}, err
	}

	s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderUpdated, existing.ID)
	return existing, nil
}

// DeleteOrder удаляет заказ. Позиции заказа не каскадируются.
func (s *Service) DeleteOrder(id string) (bool, error) {
	if id == "" {
		return false, domain.NewValidationError("id", "is required")
	}

	deleted, err := s.orders.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderDeleted, id)
	}

	return deleted, nil
}

// ListOrderItems возвращает все позиции заказов.
func (s *Service) ListOrderItems() ([]domain.OrderItem, error) {
	return s.items.List()
}

// GetOrderItem возвращает позицию заказа по идентификатору.
func (s *Service) GetOrderItem(id string) (domain.OrderItem, error) {
	if id == "" {
		return domain.OrderItem{}, domain.NewValidationError("id", "is required")
	}
	return s.items.Get(id)
}

// CreateOrderItem валидирует вход и сохраняет новую позицию заказа.
// Существование заказа и товара по ссылкам не проверяется.
func (s *Service) CreateOrderItem(in CreateOrderItemInput) (domain.OrderItem, error) {
	if err := in.Validate(); err != nil {
		return domain.OrderItem{}, err
	}

	now := time.Now().UTC()
	item := domain.OrderItem{
		ID:         uuid.NewString(),
		OrderID:    in.OrderID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		PriceMinor: in.PriceMinor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.items.Create(item); err != nil {
		return domain.OrderItem{}, err
	}

	s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderItemCreated, item.ID)
	return item, nil
}

// UpdateOrderItem полностью заменяет изменяемые поля позиции заказа.
func (s *Service) UpdateOrderItem(id string, in UpdateOrderItemInput) (domain.OrderItem, error) {
	if id == "" {
		return domain.OrderItem{}, domain.NewValidationError("id", "is required")
	}
	if err := in.Validate(); err != nil {
		return domain.OrderItem{}, err
	}

	existing, err := s.items.Get(id)
	if err != nil {
		return domain.OrderItem{}, err
	}

	existing.OrderID = in.OrderID
	existing.ProductID = in.ProductID
	existing.Quantity = in.Quantity
	existing.PriceMinor = in.PriceMinor
	existing.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(existing); err != nil {
		return domain.OrderItem{}, err
	}

	s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderItemUpdated, existing.ID)
	return existing, nil
}

// DeleteOrderItem удаляет позицию заказа.
func (s *Service) DeleteOrderItem(id string) (bool, error) {
	if id == "" {
		return false, domain.NewValidationError("id", "is required")
	}

	deleted, err := s.items.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(kafka.TopicOrderEvents, kafka.EventTypeOrderItemDeleted, id)
	}

	return deleted, nil
}

// publish отправляет событие best-effort: ошибка логируется и не влияет
// на результат мутации.
func (s *Service) publish(topic string, eventType kafka.EventType, entityID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(topic, entityID, kafka.NewEntityEvent(eventType, entityID)); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"topic":     topic,
			"event":     string(eventType),
			"entity_id": entityID,
		}).Warn("failed to publish catalog event")
	}
}
