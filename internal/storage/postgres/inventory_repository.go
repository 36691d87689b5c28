package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

type physicalInventoryRepository struct {
	db *sql.DB
}

// NewPhysicalInventoryRepository создаёт PostgreSQL-реализацию
// PhysicalInventoryRepository.
func NewPhysicalInventoryRepository(store *Store) domain.PhysicalInventoryRepository {
	return &physicalInventoryRepository{db: store.DB()}
}

func (r *physicalInventoryRepository) Save(inv domain.PhysicalInventory) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO physical_inventory (product_id, stock, location)
		VALUES ($1,$2,$3)
		ON CONFLICT (product_id) DO UPDATE
		SET stock = EXCLUDED.stock,
		    location = EXCLUDED.location
	`, inv.ProductID, inv.Stock, inv.Location)
	if err != nil {
		return fmt.Errorf("upsert physical inventory: %w", err)
	}

	return nil
}

func (r *physicalInventoryRepository) Get(productID string) (domain.PhysicalInventory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var inv domain.PhysicalInventory
	err := r.db.QueryRowContext(ctx, `
		SELECT product_id, stock, location
		FROM physical_inventory
		WHERE product_id = $1
	`, productID).Scan(&inv.ProductID, &inv.Stock, &inv.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PhysicalInventory{}, domain.ErrInventoryNotFound
		}
		return domain.PhysicalInventory{}, fmt.Errorf("select physical inventory: %w", err)
	}

	return inv, nil
}

func (r *physicalInventoryRepository) List() ([]domain.PhysicalInventory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, stock, location
		FROM physical_inventory
		ORDER BY product_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list physical inventory: %w", err)
	}
	defer rows.Close()

	records := make([]domain.PhysicalInventory, 0)
	for rows.Next() {
		var inv domain.PhysicalInventory
		if err := rows.Scan(&inv.ProductID, &inv.Stock, &inv.Location); err != nil {
			return nil, fmt.Errorf("scan physical inventory row: %w", err)
		}
		records = append(records, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate physical inventory rows: %w", err)
	}

	return records, nil
}

func (r *physicalInventoryRepository) Delete(productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM physical_inventory WHERE product_id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf("delete physical inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

type digitalInventoryRepository struct {
	db *sql.DB
}

// NewDigitalInventoryRepository создаёт PostgreSQL-реализацию
// DigitalInventoryRepository.
func NewDigitalInventoryRepository(store *Store) domain.DigitalInventoryRepository {
	return &digitalInventoryRepository{db: store.DB()}
}

func (r *digitalInventoryRepository) Save(inv domain.DigitalInventory) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO digital_inventory (product_id, digital_file, licenses_total, licenses_sold)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (product_id) DO UPDATE
		SET digital_file = EXCLUDED.digital_file,
		    licenses_total = EXCLUDED.licenses_total,
		    licenses_sold = EXCLUDED.licenses_sold
	`, inv.ProductID, inv.DigitalFile, inv.LicensesTotal, inv.LicensesSold)
	if err != nil {
		return fmt.Errorf("upsert digital inventory: %w", err)
	}

	return nil
}

func (r *digitalInventoryRepository) Get(productID string) (domain.DigitalInventory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var inv domain.DigitalInventory
	err := r.db.QueryRowContext(ctx, `
		SELECT product_id, digital_file, licenses_total, licenses_sold
		FROM digital_inventory
		WHERE product_id = $1
	`, productID).Scan(&inv.ProductID, &inv.DigitalFile, &inv.LicensesTotal, &inv.LicensesSold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DigitalInventory{}, domain.ErrInventoryNotFound
		}
		return domain.DigitalInventory{}, fmt.Errorf("select digital inventory: %w", err)
	}

	return inv, nil
}

func (r *digitalInventoryRepository) List() ([]domain.DigitalInventory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, digital_file, licenses_total, licenses_sold
		FROM digital_inventory
		ORDER BY product_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list digital inventory: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DigitalInventory, 0)
	for rows.Next() {
		var inv domain.DigitalInventory
		if err := rows.Scan(&inv.ProductID, &inv.DigitalFile, &inv.LicensesTotal, &inv.LicensesSold); err != nil {
			return nil, fmt.Errorf("scan digital inventory row: %w", err)
		}
		records = append(records, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate digital inventory rows: %w", err)
	}

	return records, nil
}

func (r *digitalInventoryRepository) Delete(productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM digital_inventory WHERE product_id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf("delete digital inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

var (
	_ domain.PhysicalInventoryRepository = (*physicalInventoryRepository)(nil)
	_ domain.DigitalInventoryRepository  = (*digitalInventoryRepository)(nil)
)
