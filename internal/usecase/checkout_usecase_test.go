package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var shipTo = model.Address{
	Street:     "1-2-3 Shibuya",
	City:       "Tokyo",
	PostalCode: "150-0002",
	Country:    "JP",
}

type checkoutFixture struct {
	cart   *usecase.CartUsecase
	gw     *CartGatewayMock
	local  *memLocalCart
	orders *OrderGatewayMock
	auth   *fakeAuth
	uc     *usecase.CheckoutUsecase
}

func newCheckout(authed bool) checkoutFixture {
	auth := &fakeAuth{ok: authed}
	cart, gw, local, _ := newCartUC(auth, usecase.CartOptions{})
	orders := new(OrderGatewayMock)
	return checkoutFixture{
		cart:   cart,
		gw:     gw,
		local:  local,
		orders: orders,
		auth:   auth,
		uc:     usecase.NewCheckoutUsecase(orders, cart, auth, validator.NewCheckoutValidator(), zap.NewNop()),
	}
}

func TestCheckoutUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newCheckout(true)

	f.gw.On("Current", mock.Anything).Return(remoteCart(42, model.CartItem{Book: book(1, "Go", 10), Quantity: 2}), nil).Once()
	_, err := f.cart.Load(ctx)
	require.NoError(t, err)

	f.orders.On("Place", mock.Anything, model.PlaceOrder{
		CartID:        42,
		Reference:     "web-1",
		Address:       shipTo,
		PaymentMethod: "CARD",
	}).Return(model.PlacedOrder{
		OrderID:       "ord-1",
		Status:        model.OrderStatusPaymentPending,
		PaymentID:     9,
		PaymentStatus: "REQUIRES_PAYMENT_METHOD",
		ClientSecret:  "pi_secret",
	}, nil).Once()

	placed, err := f.uc.PlaceOrder(ctx, usecase.CheckoutInput{
		Reference:     "web-1",
		Address:       shipTo,
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", placed.OrderID)
	assert.Equal(t, model.OrderStatusPaymentPending, placed.Status)
	assert.Equal(t, "pi_secret", placed.ClientSecret)

	// 注文後は空のローカルカート
	assert.Equal(t, model.NewLocalCart(nil), f.cart.Current())
	assert.Equal(t, 1, f.local.cleared)
	f.orders.AssertExpectations(t)
}

func TestCheckoutUsecase_PlaceOrder_Rejects(t *testing.T) {
	ctx := context.Background()
	valid := usecase.CheckoutInput{Address: shipTo, PaymentMethod: "CARD"}

	t.Run("not logged in", func(t *testing.T) {
		f := newCheckout(false)
		_, err := f.uc.PlaceOrder(ctx, valid)
		assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("invalid address", func(t *testing.T) {
		f := newCheckout(true)
		in := valid
		in.Address.City = " "
		_, err := f.uc.PlaceOrder(ctx, in)
		assertHTTPError(t, err, http.StatusBadRequest, "invalid address")
	})

	t.Run("no payment method", func(t *testing.T) {
		f := newCheckout(true)
		in := valid
		in.PaymentMethod = ""
		_, err := f.uc.PlaceOrder(ctx, in)
		assertHTTPError(t, err, http.StatusBadRequest, "invalid payment method")
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCheckout(true)
		f.gw.On("Current", mock.Anything).Return(model.Cart{}, errRemote404).Once()
		_, err := f.cart.Load(ctx)
		require.NoError(t, err)

		_, err = f.uc.PlaceOrder(ctx, valid)
		assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")
	})

	t.Run("cart only on device", func(t *testing.T) {
		f := newCheckout(false)
		_, err := f.cart.AddItem(ctx, usecase.AddItemInput{BookID: 1, Price: decimal.NewFromInt(3)})
		require.NoError(t, err)
		f.auth.set(true)

		_, err = f.uc.PlaceOrder(ctx, valid)
		assertHTTPError(t, err, http.StatusConflict, "cart is not saved")
	})

	t.Run("gateway failure keeps cart", func(t *testing.T) {
		f := newCheckout(true)
		current := remoteCart(42, model.CartItem{Book: book(1, "Go", 10), Quantity: 1})
		f.gw.On("Current", mock.Anything).Return(current, nil).Once()
		_, err := f.cart.Load(ctx)
		require.NoError(t, err)

		boom := errors.New("POST /orders: 500")
		f.orders.On("Place", mock.Anything, mock.Anything).Return(model.PlacedOrder{}, boom).Once()

		_, err = f.uc.PlaceOrder(ctx, valid)
		assertHTTPError(t, err, http.StatusBadGateway, "order placement failed")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, current, f.cart.Current())
		assert.Equal(t, 0, f.local.cleared)
	})
}
