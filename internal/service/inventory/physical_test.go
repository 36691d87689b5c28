package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
)

func TestPhysicalCreateConfirmsProduct(t *testing.T) {
	validator := NewMockValidator()
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), validator, nil)

	created, err := svc.Create(context.Background(), domain.PhysicalInventory{
		ProductID: "p-1",
		Stock:     10,
		Location:  "warehouse-a",
	})
	require.NoError(t, err)
	require.Equal(t, "p-1", created.ProductID)
	require.Equal(t, []string{"p-1"}, validator.ProductIDs)

	got, err := svc.Get("p-1")
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestPhysicalCreateRejectsUnknownProduct(t *testing.T) {
	validator := NewMockValidator()
	validator.Valid = false
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), validator, nil)

	_, err := svc.Create(context.Background(), domain.PhysicalInventory{ProductID: "ghost", Stock: 1})
	require.True(t, domain.IsReferentialIntegrity(err), "expected referential integrity error, got %v", err)

	_, err = svc.Get("ghost")
	require.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestPhysicalCreateFailsClosedWhenValidatorUnreachable(t *testing.T) {
	transportErr := errors.New("connection refused")
	validator := NewMockValidator()
	validator.Err = transportErr
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), validator, nil)

	// Недоступность валидатора отклоняет запись так же, как явный отказ.
	_, err := svc.Create(context.Background(), domain.PhysicalInventory{ProductID: "p-1", Stock: 1})
	require.True(t, domain.IsReferentialIntegrity(err), "expected referential integrity error, got %v", err)
	require.ErrorIs(t, err, transportErr)
}

func TestPhysicalUpdateChecksShapeBeforeIntegrity(t *testing.T) {
	validator := NewMockValidator()
	validator.Valid = false
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), validator, nil)

	// Несовпадение идентификаторов диагностируется до похода в валидатор.
	_, err := svc.Update(context.Background(), "p-1", domain.PhysicalInventory{ProductID: "p-2", Stock: 1})
	require.True(t, domain.IsRequestShape(err), "expected request shape error, got %v", err)
	require.Zero(t, validator.Calls)
}

func TestPhysicalUpdateAcceptsEmptyBodyID(t *testing.T) {
	validator := NewMockValidator()
	repo := memory.NewPhysicalInventoryRepository()
	svc := NewPhysicalService(repo, validator, nil)

	_, err := svc.Create(context.Background(), domain.PhysicalInventory{ProductID: "p-1", Stock: 1})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "p-1", domain.PhysicalInventory{Stock: 5, Location: "b"})
	require.NoError(t, err)
	require.Equal(t, "p-1", updated.ProductID)
	require.Equal(t, int32(5), updated.Stock)
}

func TestPhysicalUpdateMissingRecord(t *testing.T) {
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), NewMockValidator(), nil)

	_, err := svc.Update(context.Background(), "p-1", domain.PhysicalInventory{Stock: 5})
	require.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestPhysicalDeleteIsIdempotent(t *testing.T) {
	svc := NewPhysicalService(memory.NewPhysicalInventoryRepository(), NewMockValidator(), nil)

	_, err := svc.Create(context.Background(), domain.PhysicalInventory{ProductID: "p-1", Stock: 1})
	require.NoError(t, err)

	deleted, err := svc.Delete("p-1")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = svc.Delete("p-1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestDigitalCreateAllowsOversoldLicenses(t *testing.T) {
	svc := NewDigitalService(memory.NewDigitalInventoryRepository(), NewMockValidator(), nil)

	// licensesSold > licensesTotal допускается: согласованность этих полей
	// не входит в контракт записи.
	created, err := svc.Create(context.Background(), domain.DigitalInventory{
		ProductID:     "p-1",
		DigitalFile:   "dune.epub",
		LicensesTotal: 10,
		LicensesSold:  25,
	})
	require.NoError(t, err)
	require.Equal(t, int32(25), created.LicensesSold)
}

func TestDigitalValidationRejectsNegativeCounts(t *testing.T) {
	svc := NewDigitalService(memory.NewDigitalInventoryRepository(), NewMockValidator(), nil)

	_, err := svc.Create(context.Background(), domain.DigitalInventory{ProductID: "p-1", LicensesTotal: -1})
	require.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
}

func TestDigitalUpdateFailsClosed(t *testing.T) {
	validator := NewMockValidator()
	repo := memory.NewDigitalInventoryRepository()
	svc := NewDigitalService(repo, validator, nil)

	_, err := svc.Create(context.Background(), domain.DigitalInventory{ProductID: "p-1", LicensesTotal: 10})
	require.NoError(t, err)

	validator.Err = errors.New("catalog is down")
	_, err = svc.Update(context.Background(), "p-1", domain.DigitalInventory{LicensesTotal: 20})
	require.True(t, domain.IsReferentialIntegrity(err), "expected referential integrity error, got %v", err)

	// Запись не должна измениться после отклонённого обновления.
	got, err := svc.Get("p-1")
	require.NoError(t, err)
	require.Equal(t, int32(10), got.LicensesTotal)
}
