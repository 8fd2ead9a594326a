package entity

import (
	"time"
)

// Status marks a category or supplier as visible to the storefront or not.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// OrderStatus is the back-office lifecycle of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Category is a catalog category. Categories form a tree via ParentID;
// acyclicity is not enforced on this side of the backend boundary.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	Status      Status    `json:"status"`
	ParentID    *string   `json:"parent_id"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Supplier is a product supplier managed in the back office.
type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	Status      Status    `json:"status"`
	TaxID       *string   `json:"tax_id"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a sellable item. CategoryID and SupplierID are nullable
// references; referential integrity lives in the database, not here.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
	SKU         *string   `json:"sku"`
	Images      []string  `json:"images"`
	CategoryID  *string   `json:"category_id"`
	SupplierID  *string   `json:"supplier_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order is a terminal snapshot of a checkout: customer contact plus the cart
// total at the time of purchase. No line-item breakdown is kept.
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	Notes           *string     `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// DashboardStats is the back-office overview: row counts per table and
// revenue summed over every order regardless of status.
type DashboardStats struct {
	TotalOrders     int     `json:"total_orders"`
	TotalProducts   int     `json:"total_products"`
	TotalCategories int     `json:"total_categories"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// --- Create inputs ---

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Status      Status  `json:"status"`
	ParentID    *string `json:"parent_id"`
	Position    int     `json:"position"`
}

// SupplierInput is the payload for creating a supplier.
type SupplierInput struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Status      Status  `json:"status"`
	TaxID       *string `json:"tax_id"`
	Rating      float64 `json:"rating"`
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Cost        float64  `json:"cost"`
	Stock       int      `json:"stock"`
	MinStock    int      `json:"min_stock"`
	SKU         *string  `json:"sku"`
	Images      []string `json:"images"`
	CategoryID  *string  `json:"category_id"`
	SupplierID  *string  `json:"supplier_id"`
}

// OrderInput is the payload inserted at checkout.
type OrderInput struct {
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	Notes           *string     `json:"notes"`
}

// --- Partial patches ---
//
// Nil fields are left untouched by an update. There is deliberately no way to
// null out a column through a patch; the back office never does that.

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
	ParentID    *string `json:"parent_id"`
	Position    *int    `json:"position"`
}

// SupplierPatch is a partial update for a supplier.
type SupplierPatch struct {
	Name        *string  `json:"name"`
	ContactName *string  `json:"contact_name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	Status      *Status  `json:"status"`
	TaxID       *string  `json:"tax_id"`
	Rating      *float64 `json:"rating"`
}

// ProductPatch is a partial update for a product.
type ProductPatch struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Cost        *float64  `json:"cost"`
	Stock       *int      `json:"stock"`
	MinStock    *int      `json:"min_stock"`
	SKU         *string   `json:"sku"`
	Images      *[]string `json:"images"`
	CategoryID  *string   `json:"category_id"`
	SupplierID  *string   `json:"supplier_id"`
}
