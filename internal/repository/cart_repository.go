package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// サーバー側の /carts を叩くゲートウェイ
type CartGateway interface {
	// 新規作成してcartIdを返す
	Create(ctx context.Context, items []model.CartItem) (int64, error)
	// 既存カートへ追加（404なら1件で作り直し）。使われたcartIdを返す
	AddItem(ctx context.Context, cartID int64, item model.CartItem) (int64, error)
	UpdateQuantity(ctx context.Context, cartID int64, bookID int64, quantity int64) error
	RemoveItem(ctx context.Context, cartID int64, bookID int64) error
	Clear(ctx context.Context, cartID int64) error
	// ログインユーザーの現在のカート
	Current(ctx context.Context) (model.Cart, error)
}
