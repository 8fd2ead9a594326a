package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterror/nubex/internal/cart"
	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/messaging"
	"github.com/carterror/nubex/internal/repository"
	"github.com/carterror/nubex/internal/validate"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = fmt.Errorf("cart is empty")

// ValidationError carries the field-scoped messages from a rejected form.
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form invalid: %d field(s)", len(e.Fields))
}

// CheckoutService turns the current cart into an order snapshot: customer
// contact plus the cart total, status pending. The order keeps no line-item
// breakdown; once placed it is terminal.
type CheckoutService struct {
	orderRepo repository.OrderRepository
	cart      *cart.Store
	publisher messaging.Publisher
}

func NewCheckoutService(orders repository.OrderRepository, cartStore *cart.Store, publisher messaging.Publisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orders,
		cart:      cartStore,
		publisher: publisher,
	}
}

// PlaceOrder validates the form, inserts the order and clears the cart. The
// cart is cleared only after the insert succeeded; a failed checkout leaves
// it intact so the user can retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, form validate.CheckoutForm) (*entity.Order, error) {
	if errs := validate.Checkout(form); !errs.Ok() {
		return nil, &ValidationError{Fields: errs}
	}
	if len(s.cart.Items()) == 0 {
		return nil, ErrEmptyCart
	}

	itemCount := s.cart.ItemCount()
	order, err := s.orderRepo.Insert(ctx, entity.OrderInput{
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		TotalAmount:     s.cart.Total(),
		Status:          entity.OrderPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	slog.Info("Order placed", "order_id", order.ID, "total", order.TotalAmount)

	event := entity.OrderPlaced{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		ItemCount:     itemCount,
		PlacedAt:      time.Now(),
	}
	if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
		// The order row is already committed; the event can be replayed.
		slog.Error("Failed to publish OrderPlaced", "order_id", order.ID, "err", err)
	}

	s.cart.Clear(ctx)
	return order, nil
}
