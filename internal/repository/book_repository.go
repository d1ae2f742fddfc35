package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ（/books）の参照
type BookRepository interface {
	FindByID(ctx context.Context, bookID int64) (model.Book, error)
}
