package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

var productColsList = []string{
	"id", "name", "slug", "description", "price", "cost", "stock", "min_stock",
	"sku", "images", "category_id", "supplier_id", "created_at", "updated_at",
}

func productRow(mockRows *sqlmock.Rows, id, name, slug string, price float64) *sqlmock.Rows {
	now := time.Now()
	return mockRows.AddRow(id, name, slug, nil, price, 0.0, 5, 0, nil, "{}", nil, nil, now, now)
}

func TestSearchAppliesFiltersAndPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)

	minPrice := 10.0
	maxPrice := 50.0
	q := repository.ProductQuery{
		CategoryID: "cat-1",
		NameQuery:  "mouse",
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Page:       2,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM products WHERE category_id = $1 AND name ILIKE $2 AND price >= $3 AND price <= $4",
	)).
		WithArgs("cat-1", "%mouse%", minPrice, maxPrice).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	rows := sqlmock.NewRows(productColsList)
	productRow(rows, "p1", "Wireless Mouse", "wireless-mouse", 29.99)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+productCols+" FROM products WHERE category_id = $1 AND name ILIKE $2 AND price >= $3 AND price <= $4 ORDER BY created_at DESC LIMIT $5 OFFSET $6",
	)).
		WithArgs("cat-1", "%mouse%", minPrice, maxPrice, repository.ProductsPerPage, 12).
		WillReturnRows(rows)

	products, total, err := repo.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 30, total)
	require.Len(t, products, 1)
	assert.Equal(t, "wireless-mouse", products[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchNoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+productCols+" FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2",
	)).
		WithArgs(repository.ProductsPerPage, 0).
		WillReturnRows(sqlmock.NewRows(productColsList))

	products, total, err := repo.Search(context.Background(), repository.ProductQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBySlugMissingReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+productCols+" FROM products WHERE slug = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productColsList))

	p, err := repo.FindBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInsertProductReturnsStoredRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)

	rows := sqlmock.NewRows(productColsList)
	productRow(rows, "p9", "Keyboard", "keyboard", 49.00)

	sku := "KB-1"
	mock.ExpectQuery("INSERT INTO products").WillReturnRows(rows)

	p, err := repo.Insert(context.Background(), entity.ProductInput{
		Name:  "Keyboard",
		Slug:  "keyboard",
		Price: 49.00,
		Stock: 3,
		SKU:   &sku,
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
	assert.Equal(t, "keyboard", p.Slug)
}

func TestUpdateProductBuildsPartialSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)

	rows := sqlmock.NewRows(productColsList)
	productRow(rows, "p1", "Renamed", "renamed", 19.99)

	name := "Renamed"
	price := 19.99
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE products SET name = $1, price = $2, updated_at = NOW() WHERE id = $3 RETURNING "+productCols,
	)).
		WithArgs("Renamed", 19.99, "p1").
		WillReturnRows(rows)

	p, err := repo.Update(context.Background(), "p1", entity.ProductPatch{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
