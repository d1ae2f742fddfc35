package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type BookGateway struct {
	client *Client
}

// DI
func NewBookGateway(client *Client) repo.BookRepository {
	return &BookGateway{client: client}
}

// GET /books/{id}
func (g *BookGateway) FindByID(ctx context.Context, bookID int64) (model.Book, error) {
	var b model.Book
	if err := g.client.Do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", bookID), nil, &b); err != nil {
		if IsNotFound(err) {
			return model.Book{}, repo.ErrNotFound
		}
		return model.Book{}, err
	}
	return b, nil
}
