package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterror/nubex/internal/cart"
	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/validate"
)

type fakeOrderRepo struct {
	inserted []entity.OrderInput
	fail     bool
}

func (f *fakeOrderRepo) FindAll(context.Context) ([]entity.Order, error) { return nil, nil }

func (f *fakeOrderRepo) Insert(_ context.Context, in entity.OrderInput) (*entity.Order, error) {
	if f.fail {
		return nil, errors.New("remote unavailable")
	}
	f.inserted = append(f.inserted, in)
	return &entity.Order{
		ID:            "order-1",
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		TotalAmount:   in.TotalAmount,
		Status:        in.Status,
	}, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	return &entity.Order{ID: id, Status: status}, nil
}

type capturingPublisher struct {
	events []entity.Event
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, e entity.Event) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, e)
	return nil
}

func checkoutForm() validate.CheckoutForm {
	return validate.CheckoutForm{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "+1 555 0100",
		Address: "1 Analytical Way",
	}
}

func cartWith(t *testing.T, items ...cart.LineItem) *cart.Store {
	t.Helper()
	ctx := context.Background()
	s := cart.New(ctx, nil)
	for _, item := range items {
		s.AddItem(ctx, item)
	}
	return s
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	pub := &capturingPublisher{}
	c := cartWith(t,
		cart.LineItem{ID: "p1", Name: "Mouse", UnitPrice: 10},
		cart.LineItem{ID: "p2", Name: "Keyboard", UnitPrice: 5},
	)

	svc := NewCheckoutService(repo, c, pub)
	order, err := svc.PlaceOrder(ctx, checkoutForm())
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.InDelta(t, 15.0, order.TotalAmount, 1e-9)

	// Cart is cleared after a successful checkout.
	assert.Empty(t, c.Items())
	assert.Zero(t, c.ItemCount())

	require.Len(t, pub.events, 1)
	placed := pub.events[0].(entity.OrderPlaced)
	assert.Equal(t, "order-1", placed.OrderID)
	assert.Equal(t, 2, placed.ItemCount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := NewCheckoutService(&fakeOrderRepo{}, cartWith(t), &capturingPublisher{})
	_, err := svc.PlaceOrder(context.Background(), checkoutForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderInvalidForm(t *testing.T) {
	c := cartWith(t, cart.LineItem{ID: "p1", UnitPrice: 10})
	svc := NewCheckoutService(&fakeOrderRepo{}, c, &capturingPublisher{})

	form := checkoutForm()
	form.Email = "nope"
	_, err := svc.PlaceOrder(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	// Nothing was placed and the cart is untouched.
	assert.Len(t, c.Items(), 1)
}

func TestPlaceOrderRemoteFailureKeepsCart(t *testing.T) {
	c := cartWith(t, cart.LineItem{ID: "p1", UnitPrice: 10})
	svc := NewCheckoutService(&fakeOrderRepo{fail: true}, c, &capturingPublisher{})

	_, err := svc.PlaceOrder(context.Background(), checkoutForm())
	require.Error(t, err)
	assert.Len(t, c.Items(), 1, "a failed checkout must leave the cart intact")
}

func TestPlaceOrderPublishFailureIsNotFatal(t *testing.T) {
	c := cartWith(t, cart.LineItem{ID: "p1", UnitPrice: 10})
	svc := NewCheckoutService(&fakeOrderRepo{}, c, &capturingPublisher{fail: true})

	order, err := svc.PlaceOrder(context.Background(), checkoutForm())
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Empty(t, c.Items())
}
