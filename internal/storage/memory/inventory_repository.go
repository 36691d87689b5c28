package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// Складские репозитории ключуются внешним productId: по одной строке
// на товар на вид инвентаря, Save работает как upsert.

type physicalInventoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.PhysicalInventory
}

// NewPhysicalInventoryRepository возвращает in-memory хранилище физического инвентаря.
func NewPhysicalInventoryRepository() domain.PhysicalInventoryRepository {
	return &physicalInventoryInMemory{
		items: make(map[string]domain.PhysicalInventory),
	}
}

// Save создаёт или перезаписывает запись.
func (r *physicalInventoryInMemory) Save(inv domain.PhysicalInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[inv.ProductID] = inv
	return nil
}

// Get возвращает запись или ErrInventoryNotFound.
func (r *physicalInventoryInMemory) Get(productID string) (domain.PhysicalInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.items[productID]
	if !ok {
		return domain.PhysicalInventory{}, domain.ErrInventoryNotFound
	}
	return inv, nil
}

// List возвращает все записи, отсортированные по productId.
func (r *physicalInventoryInMemory) List() ([]domain.PhysicalInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.PhysicalInventory, 0, len(r.items))
	for _, inv := range r.items {
		result = append(result, inv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductID < result[j].ProductID })
	return result, nil
}

// Delete удаляет запись; false означает, что записи не было.
func (r *physicalInventoryInMemory) Delete(productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[productID]; !ok {
		return false, nil
	}
	delete(r.items, productID)
	return true, nil
}

var _ domain.PhysicalInventoryRepository = (*physicalInventoryInMemory)(nil)

type digitalInventoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.DigitalInventory
}

// NewDigitalInventoryRepository возвращает in-memory хранилище цифрового инвентаря.
func NewDigitalInventoryRepository() domain.DigitalInventoryRepository {
	return &digitalInventoryInMemory{
		items: make(map[string]domain.DigitalInventory),
	}
}

// Save создаёт или перезаписывает запись.
func (r *digitalInventoryInMemory) Save(inv domain.DigitalInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[inv.ProductID] = inv
	return nil
}

// Get возвращает запись или ErrInventoryNotFound.
func (r *digitalInventoryInMemory) Get(productID string) (domain.DigitalInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.items[productID]
	if !ok {
		return domain.DigitalInventory{}, domain.ErrInventoryNotFound
	}
	return inv, nil
}

// List возвращает все записи, отсортированные по productId.
func (r *digitalInventoryInMemory) List() ([]domain.DigitalInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.DigitalInventory, 0, len(r.items))
	for _, inv := range r.items {
		result = append(result, inv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductID < result[j].ProductID })
	return result, nil
}

// Delete удаляет запись; false означает, что записи не было.
func (r *digitalInventoryInMemory) Delete(productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[productID]; !ok {
		return false, nil
	}
	delete(r.items, productID)
	return true, nil
}

var _ domain.DigitalInventoryRepository = (*digitalInventoryInMemory)(nil)
