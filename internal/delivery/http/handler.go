// Package http exposes the storefront and back-office API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/carterror/nubex/internal/cart"
	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/money"
	"github.com/carterror/nubex/internal/repository"
	"github.com/carterror/nubex/internal/service"
	"github.com/carterror/nubex/internal/storage"
	"github.com/carterror/nubex/internal/validate"
)

// Sessions is what the handler needs from the auth layer.
type Sessions interface {
	Login(ctx context.Context, password string) (string, error)
	Validate(ctx context.Context, token string) (bool, error)
	SignOut(ctx context.Context, token string) error
}

// Handler handles HTTP requests for the storefront and the admin area.
type Handler struct {
	catalog  *service.CatalogService
	checkout *service.CheckoutService
	admin    *service.AdminService
	cart     *cart.Store
	uploader *storage.Uploader
	sessions Sessions
}

func NewHandler(
	catalog *service.CatalogService,
	checkout *service.CheckoutService,
	adminSvc *service.AdminService,
	cartStore *cart.Store,
	uploader *storage.Uploader,
	sessions Sessions,
) *Handler {
	return &Handler{
		catalog:  catalog,
		checkout: checkout,
		admin:    adminSvc,
		cart:     cartStore,
		uploader: uploader,
		sessions: sessions,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Storefront
	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("GET /api/products/{slug}", h.handleGetProduct)
	mux.HandleFunc("GET /api/categories", h.handleListCategories)
	mux.HandleFunc("GET /api/cart", h.handleGetCart)
	mux.HandleFunc("POST /api/cart/items", h.handleAddCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.handleUpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.handleRemoveCartItem)
	mux.HandleFunc("DELETE /api/cart", h.handleClearCart)
	mux.HandleFunc("POST /api/checkout", h.handleCheckout)

	// Auth
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.handleLogout)

	// Admin
	mux.HandleFunc("GET /api/admin/categories", h.requireAuth(h.handleAdminListCategories))
	mux.HandleFunc("POST /api/admin/categories", h.requireAuth(h.handleAdminCreateCategory))
	mux.HandleFunc("PUT /api/admin/categories/{id}", h.requireAuth(h.handleAdminUpdateCategory))
	mux.HandleFunc("DELETE /api/admin/categories/{id}", h.requireAuth(h.handleAdminDeleteCategory))

	mux.HandleFunc("GET /api/admin/suppliers", h.requireAuth(h.handleAdminListSuppliers))
	mux.HandleFunc("POST /api/admin/suppliers", h.requireAuth(h.handleAdminCreateSupplier))
	mux.HandleFunc("PUT /api/admin/suppliers/{id}", h.requireAuth(h.handleAdminUpdateSupplier))
	mux.HandleFunc("DELETE /api/admin/suppliers/{id}", h.requireAuth(h.handleAdminDeleteSupplier))

	mux.HandleFunc("GET /api/admin/products", h.requireAuth(h.handleAdminListProducts))
	mux.HandleFunc("POST /api/admin/products", h.requireAuth(h.handleAdminCreateProduct))
	mux.HandleFunc("PUT /api/admin/products/{id}", h.requireAuth(h.handleAdminUpdateProduct))
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.requireAuth(h.handleAdminDeleteProduct))

	mux.HandleFunc("GET /api/admin/dashboard", h.requireAuth(h.handleAdminDashboard))

	mux.HandleFunc("GET /api/admin/orders", h.requireAuth(h.handleAdminListOrders))
	mux.HandleFunc("PATCH /api/admin/orders/{id}/status", h.requireAuth(h.handleAdminUpdateOrderStatus))

	mux.HandleFunc("POST /api/admin/uploads", h.requireAuth(h.handleUpload))
	mux.HandleFunc("DELETE /api/admin/uploads", h.requireAuth(h.handleDeleteUpload))
}

// EnableCORS is middleware to allow the storefront frontend to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.sessions.Validate(r.Context(), bearerToken(r))
		if err != nil {
			slog.Error("Failed to validate session", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFieldErrors(w http.ResponseWriter, errs validate.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// --- Storefront ---

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := repository.ProductQuery{
		CategoryID: r.URL.Query().Get("category"),
		NameQuery:  r.URL.Query().Get("q"),
	}
	if v := r.URL.Query().Get("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &min
		}
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &max
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			q.Page = page
		}
	}

	page, err := h.catalog.ListProducts(r.Context(), q)
	if err != nil {
		slog.Error("Failed to list products", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		slog.Error("Failed to get product", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// --- Cart ---

type cartResponse struct {
	Items        []cart.LineItem `json:"items"`
	ItemCount    int             `json:"item_count"`
	Total        float64         `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

func (h *Handler) cartJSON() cartResponse {
	snap := h.cart.Snapshot()
	return cartResponse{
		Items:        snap.Items,
		ItemCount:    snap.ItemCount,
		Total:        snap.Total,
		TotalDisplay: money.Format(snap.Total),
	}
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartJSON())
}

func (h *Handler) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var item cart.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if item.ID == "" {
		http.Error(w, "item id is required", http.StatusBadRequest)
		return
	}

	h.cart.AddItem(r.Context(), item)
	writeJSON(w, http.StatusOK, h.cartJSON())
}

func (h *Handler) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.cart.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	writeJSON(w, http.StatusOK, h.cartJSON())
}

func (h *Handler) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), r.PathValue("id"))
	writeJSON(w, http.StatusOK, h.cartJSON())
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, h.cartJSON())
}

// --- Checkout ---

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var form validate.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), form)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeFieldErrors(w, verr.Fields)
		case errors.Is(err, service.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		default:
			slog.Error("Failed to place order", "err", err)
			http.Error(w, "failed to place order", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id":      order.ID,
		"status":        order.Status,
		"total":         order.TotalAmount,
		"total_display": money.Format(order.TotalAmount),
	})
}

// --- Auth ---

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.sessions.Login(r.Context(), req.Password)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context(), bearerToken(r)); err != nil {
		slog.Error("Failed to sign out", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: categories ---

func (h *Handler) handleAdminListCategories(w http.ResponseWriter, r *http.Request) {
	h.admin.Store().FetchCategories(r.Context())
	writeJSON(w, http.StatusOK, h.admin.Store().Categories.Items())
}

func (h *Handler) handleAdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in entity.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validate.Category(validate.CategoryForm{Name: in.Name, Position: in.Position}); !errs.Ok() {
		writeFieldErrors(w, errs)
		return
	}

	created := h.admin.CreateCategory(r.Context(), in)
	if created == nil {
		http.Error(w, "failed to create category", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleAdminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var patch entity.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated := h.admin.UpdateCategory(r.Context(), r.PathValue("id"), patch)
	if updated == nil {
		http.Error(w, "failed to update category", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.admin.DeleteCategory(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: suppliers ---

func (h *Handler) handleAdminListSuppliers(w http.ResponseWriter, r *http.Request) {
	h.admin.Store().FetchSuppliers(r.Context())
	writeJSON(w, http.StatusOK, h.admin.Store().Suppliers.Items())
}

func (h *Handler) handleAdminCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var in entity.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeFieldErrors(w, validate.Errors{"name": "Supplier name is required"})
		return
	}

	created := h.admin.CreateSupplier(r.Context(), in)
	if created == nil {
		http.Error(w, "failed to create supplier", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleAdminUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var patch entity.SupplierPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated := h.admin.UpdateSupplier(r.Context(), r.PathValue("id"), patch)
	if updated == nil {
		http.Error(w, "failed to update supplier", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAdminDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	h.admin.DeleteSupplier(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: products ---

func productForm(name string, description *string, price float64, sku *string, stock int) validate.ProductForm {
	form := validate.ProductForm{
		Name:  name,
		Price: strconv.FormatFloat(price, 'f', -1, 64),
		Stock: stock,
	}
	if description != nil {
		form.Description = *description
	}
	if sku != nil {
		form.SKU = *sku
	}
	return form
}

func (h *Handler) handleAdminListProducts(w http.ResponseWriter, r *http.Request) {
	h.admin.Store().FetchProducts(r.Context())
	writeJSON(w, http.StatusOK, h.admin.Store().Products.Items())
}

func (h *Handler) handleAdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in entity.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validate.Product(productForm(in.Name, in.Description, in.Price, in.SKU, in.Stock)); !errs.Ok() {
		writeFieldErrors(w, errs)
		return
	}

	created := h.admin.CreateProduct(r.Context(), in)
	if created == nil {
		http.Error(w, "failed to create product", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleAdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var patch entity.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if patch.Price != nil && *patch.Price <= 0 {
		writeFieldErrors(w, validate.Errors{"price": "Price must be greater than 0"})
		return
	}

	updated := h.admin.UpdateProduct(r.Context(), r.PathValue("id"), patch)
	if updated == nil {
		http.Error(w, "failed to update product", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.admin.DeleteProduct(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: dashboard ---

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.DashboardStats(r.Context())
	if err != nil {
		slog.Error("Failed to load dashboard stats", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":     stats.TotalOrders,
		"total_products":   stats.TotalProducts,
		"total_categories": stats.TotalCategories,
		"total_revenue":    stats.TotalRevenue,
		"revenue_display":  money.Format(stats.TotalRevenue),
	})
}

// --- Admin: orders ---

func (h *Handler) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	h.admin.Store().FetchOrders(r.Context())
	writeJSON(w, http.StatusOK, h.admin.Store().Orders.Items())
}

func (h *Handler) handleAdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status entity.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case entity.OrderPending, entity.OrderProcessing, entity.OrderCompleted, entity.OrderCancelled:
	default:
		http.Error(w, fmt.Sprintf("unknown order status %q", req.Status), http.StatusBadRequest)
		return
	}

	updated := h.admin.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if updated == nil {
		http.Error(w, "failed to update order", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- Admin: uploads ---

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	var files []storage.File
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		defer f.Close()
		files = append(files, storage.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		})
	}

	urls, err := h.uploader.UploadAll(r.Context(), files, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if urls == nil {
		urls = []string{}
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"urls": urls})
}

func (h *Handler) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}
	if err := h.uploader.DeleteByURL(r.Context(), url); err != nil {
		slog.Error("Failed to delete upload", "err", err)
		http.Error(w, "failed to delete upload", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
