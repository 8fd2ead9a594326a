package service

import (
	"context"
	"fmt"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

// CatalogService serves the storefront reads: the filtered product listing,
// product detail by slug and the category tree.
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  products,
		categoryRepo: categories,
	}
}

// ProductPage is one page of the storefront listing.
type ProductPage struct {
	Items      []entity.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// ListProducts applies the storefront filters and returns one page of
// matches plus pagination metadata.
func (s *CatalogService) ListProducts(ctx context.Context, q repository.ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	products, total, err := s.productRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := (total + repository.ProductsPerPage - 1) / repository.ProductsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	if products == nil {
		products = []entity.Product{}
	}
	return &ProductPage{
		Items:      products,
		Total:      total,
		Page:       q.Page,
		PerPage:    repository.ProductsPerPage,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug returns the product for a detail page, or nil when the
// slug is unknown.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

// ListCategories returns every category ordered by position.
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}
