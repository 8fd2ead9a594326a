package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

const orderCols = "id, customer_name, customer_email, customer_phone, customer_address, total_amount, status, notes, created_at, updated_at"

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates an OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+orderCols+" FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Insert(ctx context.Context, in entity.OrderInput) (*entity.Order, error) {
	if in.Status == "" {
		in.Status = entity.OrderPending
	}
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO orders (customer_name, customer_email, customer_phone, customer_address, total_amount, status, notes) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "+orderCols,
		in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.CustomerAddress, in.TotalAmount, in.Status, in.Notes,
	)
	o, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	return o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING "+orderCols,
		status, id,
	)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return o, nil
}
