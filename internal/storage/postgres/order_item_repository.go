package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
)

type orderItemRepository struct {
	db *sql.DB
}

// NewOrderItemRepository создаёт PostgreSQL-реализацию OrderItemRepository.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &orderItemRepository{db: store.DB()}
}

func (r *orderItemRepository) Create(item domain.OrderItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_item (
			id, order_id, product_id, quantity, price_minor, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		item.ID, item.OrderID, item.ProductID,
		item.Quantity, item.PriceMinor, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderItemAlreadyExists
		}
		return fmt.Errorf("insert order item: %w", err)
	}

	return nil
}

func (r *orderItemRepository) Get(id string) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, quantity, price_minor, created_at, updated_at
		FROM order_item
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.OrderID, &item.ProductID,
		&item.Quantity, &item.PriceMinor, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderItem{}, domain.ErrOrderItemNotFound
		}
		return domain.OrderItem{}, fmt.Errorf("select order item: %w", err)
	}

	return item, nil
}

func (r *orderItemRepository) List() ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price_minor, created_at, updated_at
		FROM order_item
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.PriceMinor, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return items, nil
}

func (r *orderItemRepository) Update(item domain.OrderItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE order_item
		SET order_id = $1,
		    product_id = $2,
		    quantity = $3,
		    price_minor = $4,
		    updated_at = $5
		WHERE id = $6
	`,
		item.OrderID, item.ProductID, item.Quantity, item.PriceMinor, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderItemNotFound
	}

	return nil
}

func (r *orderItemRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM order_item WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)
