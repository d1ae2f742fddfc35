package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const cartsPath = "/carts"

// POST /carts
type createCartEntry struct {
	ProductID int64       `json:"productId"`
	Quantity  int64       `json:"quantity"`
	Price     json.Number `json:"price"`
}

type createCartRequest struct {
	Items []createCartEntry `json:"items"`
}

type createCartResponse struct {
	CartID int64 `json:"cartId"`
}

// POST/PUT /carts/{id}/items
type cartEntry struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// GET /carts/current
type currentCartItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
}

type currentCartResponse struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"userId"`
	Items      []currentCartItem `json:"items"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

type CartGateway struct {
	client *Client
}

// DI
func NewCartGateway(client *Client) repo.CartGateway {
	return &CartGateway{client: client}
}

func (g *CartGateway) Create(ctx context.Context, items []model.CartItem) (int64, error) {
	req := createCartRequest{Items: make([]createCartEntry, 0, len(items))}
	for _, it := range items {
		req.Items = append(req.Items, createCartEntry{
			ProductID: it.Book.ID,
			Quantity:  it.Quantity,
			Price:     json.Number(it.Book.Price.String()),
		})
	}

	var out createCartResponse
	if err := g.client.Do(ctx, http.MethodPost, cartsPath, req, &out); err != nil {
		return 0, err
	}
	return out.CartID, nil
}

// カートが消えていたら（404）この1件で作り直す
func (g *CartGateway) AddItem(ctx context.Context, cartID int64, item model.CartItem) (int64, error) {
	err := g.client.Do(ctx, http.MethodPost, itemsPath(cartID), cartEntry{
		ProductID: item.Book.ID,
		Quantity:  item.Quantity,
	}, nil)
	if err == nil {
		return cartID, nil
	}
	if !IsNotFound(err) {
		return 0, err
	}
	return g.Create(ctx, []model.CartItem{item})
}

func (g *CartGateway) UpdateQuantity(ctx context.Context, cartID int64, bookID int64, quantity int64) error {
	return g.client.Do(ctx, http.MethodPut, itemsPath(cartID), cartEntry{
		ProductID: bookID,
		Quantity:  quantity,
	}, nil)
}

func (g *CartGateway) RemoveItem(ctx context.Context, cartID int64, bookID int64) error {
	return g.client.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", itemsPath(cartID), bookID), nil, nil)
}

func (g *CartGateway) Clear(ctx context.Context, cartID int64) error {
	return g.client.Do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/clear", cartsPath, cartID), nil, nil)
}

func (g *CartGateway) Current(ctx context.Context) (model.Cart, error) {
	var out currentCartResponse
	if err := g.client.Do(ctx, http.MethodGet, cartsPath+"/current", nil, &out); err != nil {
		return model.Cart{}, err
	}

	items := make([]model.CartItem, 0, len(out.Items))
	for _, it := range out.Items {
		items = append(items, model.CartItem{
			Book: model.BookRef{
				ID:    it.ProductID,
				Title: it.Title,
				Price: it.Price,
				Image: it.Image,
			},
			Quantity: it.Quantity,
		})
	}

	return model.Cart{
		ID:        out.ID,
		Items:     items,
		Local:     false,
		Persisted: true,
	}, nil
}

func itemsPath(cartID int64) string {
	return fmt.Sprintf("%s/%d/items", cartsPath, cartID)
}
