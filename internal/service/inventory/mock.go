package inventory

import (
	"context"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

// MockValidator — конфигурируемая заглушка ProductValidator для тестов.
type MockValidator struct {
	Valid bool
	Err   error

	Calls      int
	ProductIDs []string
}

// NewMockValidator возвращает валидатор, подтверждающий любой товар.
func NewMockValidator() *MockValidator {
	return &MockValidator{Valid: true}
}

// ValidateProduct возвращает заранее настроенный результат и считает вызовы.
func (m *MockValidator) ValidateProduct(_ context.Context, productID string) (bool, error) {
	m.Calls++
	m.ProductIDs = append(m.ProductIDs, productID)
	if m.Err != nil {
		return false, m.Err
	}
	return m.Valid, nil
}

var _ domain.ProductValidator = (*MockValidator)(nil)
