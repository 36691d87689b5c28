package inventory

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// DigitalService управляет записями цифровых товаров. Правила те же, что и
// у физического склада: подтверждение товара каталогом перед каждой записью,
// fail-closed при недоступности валидатора.
type DigitalService struct {
	repo      domain.DigitalInventoryRepository
	validator domain.ProductValidator
	logger    *log.Entry
}

// NewDigitalService конструирует сервис цифрового склада.
func NewDigitalService(repo domain.DigitalInventoryRepository, validator domain.ProductValidator, logger *log.Entry) *DigitalService {
	if logger == nil {
		logger = log.WithField("component", "digital-inventory")
	}
	return &DigitalService{repo: repo, validator: validator, logger: logger}
}

// List возвращает все записи цифровых товаров.
func (s *DigitalService) List() ([]domain.DigitalInventory, error) {
	return s.repo.List()
}

// Get возвращает запись по productId или ErrInventoryNotFound.
func (s *DigitalService) Get(productID string) (domain.DigitalInventory, error) {
	if productID == "" {
		return domain.DigitalInventory{}, domain.NewValidationError("productId", "is required")
	}
	return s.repo.Get(productID)
}

// Create сохраняет новую запись после подтверждения товара каталогом.
func (s *DigitalService) Create(ctx context.Context, inv domain.DigitalInventory) (domain.DigitalInventory, error) {
	if err := validateDigital(inv); err != nil {
		return domain.DigitalInventory{}, err
	}
	if err := s.confirmProduct(ctx, inv.ProductID); err != nil {
		return domain.DigitalInventory{}, err
	}

	if err := s.repo.Save(inv); err != nil {
		return domain.DigitalInventory{}, err
	}

	return inv, nil
}

// Update перезаписывает запись по productId из пути запроса.
func (s *DigitalService) Update(ctx context.Context, pathProductID string, inv domain.DigitalInventory) (domain.DigitalInventory, error) {
	if pathProductID == "" {
		return domain.DigitalInventory{}, domain.NewValidationError("productId", "is required")
	}
	if inv.ProductID != "" && inv.ProductID != pathProductID {
		return domain.DigitalInventory{}, &domain.RequestShapeError{PathID: pathProductID, BodyID: inv.ProductID}
	}
	inv.ProductID = pathProductID

	if err := validateDigital(inv); err != nil {
		return domain.DigitalInventory{}, err
	}
	if _, err := s.repo.Get(pathProductID); err != nil {
		return domain.DigitalInventory{}, err
	}
	if err := s.confirmProduct(ctx, pathProductID); err != nil {
		return domain.DigitalInventory{}, err
	}

	if err := s.repo.Save(inv); err != nil {
		return domain.DigitalInventory{}, err
	}

	return inv, nil
}

// Delete удаляет запись; повторное удаление не ошибка.
func (s *DigitalService) Delete(productID string) (bool, error) {
	if productID == "" {
		return false, domain.NewValidationError("productId", "is required")
	}
	return s.repo.Delete(productID)
}

func (s *DigitalService) confirmProduct(ctx context.Context, productID string) error {
	valid, err := s.validator.ValidateProduct(ctx, productID)
	if err != nil {
		return &domain.ReferentialIntegrityError{ProductID: productID, Cause: err}
	}
	if !valid {
		return &domain.ReferentialIntegrityError{ProductID: productID}
	}
	return nil
}

// validateDigital проверяет форму записи. Соотношение licensesSold и
// licensesTotal сознательно не проверяется.
func validateDigital(inv domain.DigitalInventory) error {
	if inv.ProductID == "" {
		return domain.NewValidationError("productId", "is required")
	}
	if inv.LicensesTotal < 0 {
		return domain.NewValidationError("licensesTotal", "must be >= 0")
	}
	if inv.LicensesSold < 0 {
		return domain.NewValidationError("licensesSold", "must be >= 0")
	}
	return nil
}
