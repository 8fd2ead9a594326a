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
)

var categoryColsList = []string{
	"id", "name", "description", "slug", "status", "parent_id", "position",
	"created_at", "updated_at",
}

func TestCategoryFindAllOrdersByPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(categoryColsList).
		AddRow("c1", "Accessories", nil, "accessories", "active", nil, 0, now, now).
		AddRow("c2", "Audio", nil, "audio", "active", nil, 1, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + categoryCols + " FROM categories ORDER BY position")).
		WillReturnRows(rows)

	categories, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "accessories", categories[0].Slug)
	assert.Equal(t, 1, categories[1].Position)
}

func TestCategoryInsertEchoesStoredRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(categoryColsList).
		AddRow("c9", "Audio", nil, "audio", "active", nil, 3, now, now)

	mock.ExpectQuery("INSERT INTO categories").WillReturnRows(rows)

	c, err := repo.Insert(context.Background(), entity.CategoryInput{
		Name: "Audio", Slug: "audio", Status: entity.StatusActive, Position: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", c.ID)
	assert.Equal(t, 3, c.Position)
}

func TestCategoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
