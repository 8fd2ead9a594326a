// Package validate holds the form validation rules for the back office and
// the storefront checkout. Forms carry their fields as submitted, so numeric
// fields arrive as strings and are parsed here.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Errors maps a field name to a human-readable message. An empty map means
// the form may be submitted.
type Errors map[string]string

// Ok reports whether the form passed every rule.
func (e Errors) Ok() bool { return len(e) == 0 }

// ClearField drops the message for a single field. Callers invoke this when
// the user edits a field, so its error disappears without re-validating the
// whole form.
func (e Errors) ClearField(name string) { delete(e, name) }

var (
	skuPattern   = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ProductForm carries the product form fields as submitted.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	SKU         string
	Stock       int
}

// Product applies the product form rules.
func Product(f ProductForm) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Product description is required"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price <= 0 {
		errs["price"] = "Price must be greater than 0"
	}

	if strings.TrimSpace(f.SKU) == "" {
		errs["sku"] = "SKU is required"
	} else if !skuPattern.MatchString(f.SKU) {
		errs["sku"] = "SKU can only contain letters, numbers, and hyphens"
	}

	if f.Stock < 0 {
		errs["stock"] = "Stock cannot be negative"
	}

	return errs
}

// CategoryForm carries the category form fields as submitted.
type CategoryForm struct {
	Name     string
	Position int
}

// Category applies the category form rules.
func Category(f CategoryForm) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Category name is required"
	}
	if f.Position < 0 {
		errs["position"] = "Position cannot be negative"
	}

	return errs
}

// CheckoutForm carries the customer contact fields from checkout.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Checkout applies the checkout form rules.
func Checkout(f CheckoutForm) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email is not valid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}

	return errs
}
