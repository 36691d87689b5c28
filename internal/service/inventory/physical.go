package inventory

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// PhysicalService управляет складскими записями физических товаров.
// Перед каждой записью существование товара подтверждается в каталоге;
// недоступность валидатора отклоняет запись (fail-closed).
type PhysicalService struct {
	repo      domain.PhysicalInventoryRepository
	validator domain.ProductValidator
	logger    *log.Entry
}

// NewPhysicalService конструирует сервис физического склада.
func NewPhysicalService(repo domain.PhysicalInventoryRepository, validator domain.ProductValidator, logger *log.Entry) *PhysicalService {
	if logger == nil {
		logger = log.WithField("component", "physical-inventory")
	}
	return &PhysicalService{repo: repo, validator: validator, logger: logger}
}

// List возвращает все складские записи.
func (s *PhysicalService) List() ([]domain.PhysicalInventory, error) {
	return s.repo.List()
}

// Get возвращает запись по productId или ErrInventoryNotFound.
func (s *PhysicalService) Get(productID string) (domain.PhysicalInventory, error) {
	if productID == "" {
		return domain.PhysicalInventory{}, domain.NewValidationError("productId", "is required")
	}
	return s.repo.Get(productID)
}

// Create сохраняет новую запись после подтверждения товара каталогом.
func (s *PhysicalService) Create(ctx context.Context, inv domain.PhysicalInventory) (domain.PhysicalInventory, error) {
	if err := validatePhysical(inv); err != nil {
		return domain.PhysicalInventory{}, err
	}
	if err := s.confirmProduct(ctx, inv.ProductID); err != nil {
		return domain.PhysicalInventory{}, err
	}

	if err := s.repo.Save(inv); err != nil {
		return domain.PhysicalInventory{}, err
	}

	return inv, nil
}

// Update перезаписывает запись по productId из пути запроса.
// Несовпадение идентификатора в теле и в пути отклоняется до проверки
// ссылочной целостности: это разные классы ошибок.
func (s *PhysicalService) Update(ctx context.Context, pathProductID string, inv domain.PhysicalInventory) (domain.PhysicalInventory, error) {
	if pathProductID == "" {
		return domain.PhysicalInventory{}, domain.NewValidationError("productId", "is required")
	}
	if inv.ProductID != "" && inv.ProductID != pathProductID {
		return domain.PhysicalInventory{}, &domain.RequestShapeError{PathID: pathProductID, BodyID: inv.ProductID}
	}
	inv.ProductID = pathProductID

	if err := validatePhysical(inv); err != nil {
		return domain.PhysicalInventory{}, err
	}
	if _, err := s.repo.Get(pathProductID); err != nil {
		return domain.PhysicalInventory{}, err
	}
	if err := s.confirmProduct(ctx, pathProductID); err != nil {
		return domain.PhysicalInventory{}, err
	}

	if err := s.repo.Save(inv); err != nil {
		return domain.PhysicalInventory{}, err
	}

	return inv, nil
}

// Delete удаляет запись; повторное удаление не ошибка.
func (s *PhysicalService) Delete(productID string) (bool, error) {
	if productID == "" {
		return false, domain.NewValidationError("productId", "is required")
	}
	return s.repo.Delete(productID)
}

func (s *PhysicalService) confirmProduct(ctx context.Context, productID string) error {
	valid, err := s.validator.ValidateProduct(ctx, productID)
	if err != nil {
		// Недоступность каталога трактуется как отказ, не как подтверждение.
		return &domain.ReferentialIntegrityError{ProductID: productID, Cause: err}
	}
	if !valid {
		return &domain.ReferentialIntegrityError{ProductID: productID}
	}
	return nil
}

func validatePhysical(inv domain.PhysicalInventory) error {
	if inv.ProductID == "" {
		return domain.NewValidationError("productId", "is required")
	}
	if inv.Stock < 0 {
		return domain.NewValidationError("stock", "must be >= 0")
	}
	return nil
}
