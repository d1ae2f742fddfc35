package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 未ログイン時のカート明細を端末に保存する
type LocalCartStore interface {
	// 保存が無ければ ErrNotFound
	LoadItems(ctx context.Context) ([]model.CartItem, error)
	SaveItems(ctx context.Context, items []model.CartItem) error
	ClearItems(ctx context.Context) error
}
