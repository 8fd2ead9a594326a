package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

type pagingProductRepo struct {
	items []entity.Product
	total int
	lastQ repository.ProductQuery
}

func (r *pagingProductRepo) FindAll(context.Context) ([]entity.Product, error) { return r.items, nil }

func (r *pagingProductRepo) Search(_ context.Context, q repository.ProductQuery) ([]entity.Product, int, error) {
	r.lastQ = q
	return r.items, r.total, nil
}

func (r *pagingProductRepo) FindBySlug(context.Context, string) (*entity.Product, error) {
	return nil, nil
}

func (r *pagingProductRepo) Insert(context.Context, entity.ProductInput) (*entity.Product, error) {
	return nil, nil
}

func (r *pagingProductRepo) Update(context.Context, string, entity.ProductPatch) (*entity.Product, error) {
	return nil, nil
}

func (r *pagingProductRepo) Delete(context.Context, string) error { return nil }

func TestListProductsClampsPage(t *testing.T) {
	repo := &pagingProductRepo{}
	svc := NewCatalogService(repo, &recordingCategoryRepo{})

	page, err := svc.ListProducts(context.Background(), repository.ProductQuery{Page: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastQ.Page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestListProductsComputesTotalPages(t *testing.T) {
	repo := &pagingProductRepo{total: 25}
	svc := NewCatalogService(repo, &recordingCategoryRepo{})

	page, err := svc.ListProducts(context.Background(), repository.ProductQuery{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, repository.ProductsPerPage, page.PerPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
}
