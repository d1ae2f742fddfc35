package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// usecaseがValidatorInterfaceに依存する約束
type CheckoutValidator interface {
	ValidateCheckout(ctx context.Context, in CheckoutInput) error
}

type CheckoutInput struct {
	Reference     string
	Address       model.Address
	PaymentMethod string
}

// 注文確定。成功したらカートを空のローカルカートに戻す
type CheckoutUsecase struct {
	orders    repo.OrderGateway
	cart      *CartUsecase
	auth      Authenticator
	validator CheckoutValidator
	logger    *zap.Logger
}

// DI
func NewCheckoutUsecase(
	orders repo.OrderGateway,
	cart *CartUsecase,
	auth Authenticator,
	validator CheckoutValidator,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		orders:    orders,
		cart:      cart,
		auth:      auth,
		validator: validator,
		logger:    logger,
	}
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in CheckoutInput) (model.PlacedOrder, error) {
	if !u.auth.IsAuthenticated() {
		return model.PlacedOrder{}, errUnauthorized
	}
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateCheckout(ctx, in); err != nil {
		return model.PlacedOrder{}, err
	}

	cart := u.cart.Current()
	if len(cart.Items) == 0 {
		return model.PlacedOrder{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if !cart.Persisted || cart.ID == 0 {
		return model.PlacedOrder{}, NewHTTPError(http.StatusConflict, "cart is not saved")
	}

	placed, err := u.orders.Place(ctx, model.PlaceOrder{
		CartID:        cart.ID,
		Reference:     in.Reference,
		Address:       in.Address,
		PaymentMethod: strings.ToUpper(strings.TrimSpace(in.PaymentMethod)),
	})
	if err != nil {
		u.logger.Error("place order failed", zap.Int64("cart_id", cart.ID), zap.Error(err))
		return model.PlacedOrder{}, &HTTPError{Status: http.StatusBadGateway, Message: "order placement failed", Err: err}
	}

	u.logger.Info("order placed",
		zap.String("order_id", placed.OrderID),
		zap.String("status", string(placed.Status)),
		zap.Int64("cart_id", cart.ID))

	u.cart.Reset(ctx)
	return placed, nil
}
