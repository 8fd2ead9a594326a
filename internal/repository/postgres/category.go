package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

const categoryCols = "id, name, description, slug, status, parent_id, position, created_at, updated_at"

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a CategoryRepository backed by Postgres.
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.Status, &c.ParentID, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+categoryCols+" FROM categories ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Insert(ctx context.Context, in entity.CategoryInput) (*entity.Category, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name, description, slug, status, parent_id, position) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+categoryCols,
		in.Name, in.Description, in.Slug, in.Status, in.ParentID, in.Position,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Slug != nil {
		b.set("slug", *patch.Slug)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.ParentID != nil {
		b.set("parent_id", *patch.ParentID)
	}
	if patch.Position != nil {
		b.set("position", *patch.Position)
	}
	if b.empty() {
		return r.findByID(ctx, id)
	}

	set, args := b.clause(id)
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d RETURNING %s", set, len(args), categoryCols),
		args...,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return c, nil
}

func (r *categoryRepository) findByID(ctx context.Context, id string) (*entity.Category, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+categoryCols+" FROM categories WHERE id = $1", id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", id, err)
	}
	return c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
