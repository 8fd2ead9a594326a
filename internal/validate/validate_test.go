package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProductForm() ProductForm {
	return ProductForm{
		Name:        "Wireless Mouse",
		Description: "A mouse without wires",
		Price:       "29.99",
		SKU:         "WM-100",
		Stock:       10,
	}
}

func TestProductValid(t *testing.T) {
	errs := Product(validProductForm())
	assert.True(t, errs.Ok())
	assert.Empty(t, errs)
}

func TestProductPrice(t *testing.T) {
	for _, price := range []string{"0", "-5", "abc", "", "12,50"} {
		f := validProductForm()
		f.Price = price
		errs := Product(f)
		assert.Contains(t, errs, "price", "price %q must fail", price)
	}
}

func TestProductSKU(t *testing.T) {
	for _, sku := range []string{"WM 100", "WM_100", "WM#100", ""} {
		f := validProductForm()
		f.SKU = sku
		errs := Product(f)
		assert.Contains(t, errs, "sku", "sku %q must fail", sku)
	}

	f := validProductForm()
	f.SKU = "abc-DEF-123"
	assert.NotContains(t, Product(f), "sku")
}

func TestProductRequiredFields(t *testing.T) {
	f := validProductForm()
	f.Name = "   "
	f.Description = ""
	f.Stock = -1
	errs := Product(f)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "stock")
}

func TestClearField(t *testing.T) {
	f := validProductForm()
	f.Name = ""
	f.Price = "nope"
	errs := Product(f)
	assert.Len(t, errs, 2)

	errs.ClearField("name")
	assert.NotContains(t, errs, "name")
	assert.Contains(t, errs, "price")
}

func TestCategory(t *testing.T) {
	assert.True(t, Category(CategoryForm{Name: "Accessories"}).Ok())
	assert.Contains(t, Category(CategoryForm{Name: ""}), "name")
	assert.Contains(t, Category(CategoryForm{Name: "X", Position: -1}), "position")
}

func TestCheckout(t *testing.T) {
	full := CheckoutForm{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "+1 555 0100",
		Address: "1 Analytical Way",
	}
	assert.True(t, Checkout(full).Ok())

	empty := Checkout(CheckoutForm{})
	assert.Contains(t, empty, "name")
	assert.Contains(t, empty, "email")
	assert.Contains(t, empty, "phone")
	assert.Contains(t, empty, "address")

	bad := full
	bad.Email = "not-an-email"
	assert.Contains(t, Checkout(bad), "email")
}
