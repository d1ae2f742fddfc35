package server

import (
	"storefront/internal/handler"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Cart     *handler.CartHandler
	Session  *handler.SessionHandler
	Checkout *handler.CheckoutHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, auth usecase.Authenticator) {
	h.Cart.RegisterRoutes(e)
	h.Session.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e, auth)
}
