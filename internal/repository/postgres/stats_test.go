package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepository(db)

	rows := sqlmock.NewRows([]string{"orders", "products", "categories", "revenue"}).
		AddRow(7, 42, 5, 1234.56)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalOrders)
	assert.Equal(t, 42, stats.TotalProducts)
	assert.Equal(t, 5, stats.TotalCategories)
	assert.InDelta(t, 1234.56, stats.TotalRevenue, 1e-9)
}
