package handler

import (
	"net/http"
	"time"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /sessionのHTTP（IdPから受け取ったトークンの登録・破棄）
type SessionHandler struct {
	session *usecase.SessionUsecase
	cart    *usecase.CartUsecase
}

// DI
func NewSessionHandler(session *usecase.SessionUsecase, cart *usecase.CartUsecase) *SessionHandler {
	return &SessionHandler{session: session, cart: cart}
}

type LoginRequest struct {
	AccessToken string `json:"accessToken"`
}

type SessionView struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	Roles         []string   `json:"roles,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/session")

	g.GET("", h.get)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
}

func (h *SessionHandler) view() SessionView {
	if !h.session.IsAuthenticated() {
		return SessionView{}
	}
	s := h.session.Current()
	v := SessionView{
		Authenticated: true,
		Subject:       s.Subject,
		Roles:         s.Roles,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		v.ExpiresAt = &exp
	}
	return v
}

func (h *SessionHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

func (h *SessionHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if _, err := h.session.Login(c.Request().Context(), req.AccessToken); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.view())
}

// ログアウト後はカートも空のローカルカートに戻す
func (h *SessionHandler) logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.session.Logout(ctx); err != nil {
		return writeError(c, err)
	}
	h.cart.Reset(ctx)

	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
