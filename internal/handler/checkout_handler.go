package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	Reference     string        `json:"reference"`
	Address       model.Address `json:"address"`
	PaymentMethod string        `json:"paymentMethod"`
}

// ログイン中のみ
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, auth usecase.Authenticator) {
	e.POST("/checkout", h.placeOrder, middleware.RequireSession(auth))
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.CheckoutInput{
		Reference:     req.Reference,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
