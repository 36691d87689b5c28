package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// orderItemRepositoryInMemory — простая in-memory реализация OrderItemRepository.
type orderItemRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.OrderItem
}

// NewOrderItemRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderItemRepository() domain.OrderItemRepository {
	return &orderItemRepositoryInMemory{
		items: make(map[string]domain.OrderItem),
	}
}

// Create сохраняет новую позицию, если ID ещё не занят.
func (r *orderItemRepositoryInMemory) Create(item domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return domain.ErrOrderItemAlreadyExists
	}
	r.items[item.ID] = item
	return nil
}

// Get возвращает позицию или ErrOrderItemNotFound, если её нет.
func (r *orderItemRepositoryInMemory) Get(id string) (domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.OrderItem{}, domain.ErrOrderItemNotFound
	}
	return item, nil
}

// List возвращает все позиции, отсортированные по времени создания.
func (r *orderItemRepositoryInMemory) List() ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderItem, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Update перезаписывает существующую позицию.
func (r *orderItemRepositoryInMemory) Update(item domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrOrderItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

// Delete удаляет позицию; false означает, что записи не было.
func (r *orderItemRepositoryInMemory) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ domain.OrderItemRepository = (*orderItemRepositoryInMemory)(nil)
