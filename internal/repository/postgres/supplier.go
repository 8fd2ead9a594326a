package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

const supplierCols = "id, name, contact_name, email, phone, address, status, tax_id, rating, created_at, updated_at"

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a SupplierRepository backed by Postgres.
func NewSupplierRepository(db *sql.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func scanSupplier(row interface{ Scan(...any) error }) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.Status, &s.TaxID, &s.Rating, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+supplierCols+" FROM suppliers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Insert(ctx context.Context, in entity.SupplierInput) (*entity.Supplier, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO suppliers (name, contact_name, email, phone, address, status, tax_id, rating) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "+supplierCols,
		in.Name, in.ContactName, in.Email, in.Phone, in.Address, in.Status, in.TaxID, in.Rating,
	)
	s, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) Update(ctx context.Context, id string, patch entity.SupplierPatch) (*entity.Supplier, error) {
	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.ContactName != nil {
		b.set("contact_name", *patch.ContactName)
	}
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.set("phone", *patch.Phone)
	}
	if patch.Address != nil {
		b.set("address", *patch.Address)
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.TaxID != nil {
		b.set("tax_id", *patch.TaxID)
	}
	if patch.Rating != nil {
		b.set("rating", *patch.Rating)
	}
	if b.empty() {
		return r.findByID(ctx, id)
	}

	set, args := b.clause(id)
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("UPDATE suppliers SET %s WHERE id = $%d RETURNING %s", set, len(args), supplierCols),
		args...,
	)
	s, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier %s: %w", id, err)
	}
	return s, nil
}

func (r *supplierRepository) findByID(ctx context.Context, id string) (*entity.Supplier, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+supplierCols+" FROM suppliers WHERE id = $1", id)
	s, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", id, err)
	}
	return s, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", id, err)
	}
	return nil
}
