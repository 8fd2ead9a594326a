package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a StatsRepository backed by Postgres.
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM categories),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders)`)

	var s entity.DashboardStats
	if err := row.Scan(&s.TotalOrders, &s.TotalProducts, &s.TotalCategories, &s.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return &s, nil
}
