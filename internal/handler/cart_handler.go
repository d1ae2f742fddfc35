package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /cartのHTTP（画面が読むカートの投影）
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// title/price が無ければカタログから引く
type AddCartItemRequest struct {
	BookID   int64            `json:"bookId"`
	Title    string           `json:"title"`
	Price    *decimal.Decimal `json:"price"`
	Image    string           `json:"image"`
	Quantity int64            `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartView struct {
	Cart  model.Cart      `json:"cart"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
	Store string          `json:"store"`
	Error string          `json:"error,omitempty"`
}

// /cart 以下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.GET("/events", h.events)
	g.POST("/items", h.addItem)
	g.PUT("/items/:bookId", h.updateItem)
	g.DELETE("/items/:bookId", h.deleteItem)
	g.POST("/clear", h.clear)
}

func (h *CartHandler) view(cart model.Cart) CartView {
	return CartView{
		Cart:  cart,
		Total: cart.Total(),
		Count: cart.Count(),
		Store: h.uc.StoreName(),
		Error: h.uc.LastError(),
	}
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view(h.uc.Current()))
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()

	var (
		cart model.Cart
		err  error
	)
	if req.Title == "" || req.Price == nil {
		cart, err = h.uc.AddBook(ctx, req.BookID, req.Quantity)
	} else {
		cart, err = h.uc.AddItem(ctx, usecase.AddItemInput{
			BookID:   req.BookID,
			Title:    req.Title,
			Price:    *req.Price,
			Image:    req.Image,
			Quantity: req.Quantity,
		})
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.view(cart))
}

func (h *CartHandler) updateItem(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.UpdateQuantity(c.Request().Context(), bookID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.view(cart))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), bookID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.view(cart))
}

func (h *CartHandler) clear(c echo.Context) error {
	cart, err := h.uc.ClearCart(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.view(cart))
}

// server-sent events。接続時の現在値と、以降の差し替えごとに1件
func (h *CartHandler) events(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	ch, cancel := h.uc.Subscribe()
	defer cancel()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case cart, ok := <-ch:
			if !ok {
				return nil
			}
			b, err := json.Marshal(h.view(cart))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: cart\ndata: %s\n\n", b); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
