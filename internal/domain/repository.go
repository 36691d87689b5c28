package domain

// ProductRepository описывает требования к хранилищу товаров каталога.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ErrProductAlreadyExists, если ID занят.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// List возвращает все товары в детерминированном порядке.
	List() ([]Product, error)
	// Update перезаписывает товар или возвращает ErrProductNotFound.
	Update(product Product) error
	// Delete удаляет товар; false означает, что записи не было.
	Delete(id string) (bool, error)
	// Exists проверяет наличие товара без его загрузки.
	Exists(id string) (bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	Create(order Order) error
	Get(id string) (Order, error)
	List() ([]Order, error)
	Update(order Order) error
	Delete(id string) (bool, error)
}

// OrderItemRepository описывает требования к хранилищу позиций заказов.
type OrderItemRepository interface {
	Create(item OrderItem) error
	Get(id string) (OrderItem, error)
	List() ([]OrderItem, error)
	Update(item OrderItem) error
	Delete(id string) (bool, error)
}

// PhysicalInventoryRepository хранит складские записи физических товаров,
// по одной строке на productId.
type PhysicalInventoryRepository interface {
	// Save создаёт или перезаписывает запись (семантика upsert).
	Save(inv PhysicalInventory) error
	Get(productID string) (PhysicalInventory, error)
	List() ([]PhysicalInventory, error)
	// Delete удаляет запись; false означает, что записи не было.
	Delete(productID string) (bool, error)
}

// DigitalInventoryRepository хранит записи цифровых товаров,
// по одной строке на productId.
type DigitalInventoryRepository interface {
	Save(inv DigitalInventory) error
	Get(productID string) (DigitalInventory, error)
	List() ([]DigitalInventory, error)
	Delete(productID string) (bool, error)
}
