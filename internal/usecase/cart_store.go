package usecase

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// CartStore はカートの保存先ごとの振る舞い。
// 未ログインなら端末ローカル、ログイン中ならサーバー。
// どの操作も新しいカートを丸ごと返す。
type CartStore interface {
	Name() string
	Load(ctx context.Context) (model.Cart, error)
	Add(ctx context.Context, cur model.Cart, item model.CartItem) (model.Cart, error)
	UpdateQuantity(ctx context.Context, cur model.Cart, bookID int64, quantity int64) (model.Cart, error)
	Remove(ctx context.Context, cur model.Cart, bookID int64) (model.Cart, error)
	Clear(ctx context.Context, cur model.Cart) (model.Cart, error)
}

// ---- 端末ローカル ----

type localCartStore struct {
	items  repo.LocalCartStore
	logger *zap.Logger
}

func NewLocalCartStore(items repo.LocalCartStore, logger *zap.Logger) CartStore {
	return &localCartStore{items: items, logger: logger}
}

func (s *localCartStore) Name() string { return "local" }

// 読めない・壊れている場合は空カート
func (s *localCartStore) Load(ctx context.Context) (model.Cart, error) {
	items, err := s.items.LoadItems(ctx)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("local cart unreadable, starting empty", zap.Error(err))
		}
		return model.NewLocalCart(nil), nil
	}
	if !validItems(items) {
		s.logger.Warn("local cart has invalid items, starting empty", zap.Int("items", len(items)))
		return model.NewLocalCart(nil), nil
	}
	return model.NewLocalCart(items), nil
}

// 数量1以上・同じ本は1行まで
func validItems(items []model.CartItem) bool {
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it.Book.ID <= 0 || it.Quantity < 1 {
			return false
		}
		if _, dup := seen[it.Book.ID]; dup {
			return false
		}
		seen[it.Book.ID] = struct{}{}
	}
	return true
}

func (s *localCartStore) Add(ctx context.Context, cur model.Cart, item model.CartItem) (model.Cart, error) {
	return s.save(ctx, model.MergeItem(cur.Items, item)), nil
}

func (s *localCartStore) UpdateQuantity(ctx context.Context, cur model.Cart, bookID int64, quantity int64) (model.Cart, error) {
	next := cur.Clone()
	if i := next.IndexOf(bookID); i >= 0 {
		next.Items[i].Quantity = quantity
	}
	return s.save(ctx, next.Items), nil
}

func (s *localCartStore) Remove(ctx context.Context, cur model.Cart, bookID int64) (model.Cart, error) {
	items := make([]model.CartItem, 0, len(cur.Items))
	for _, it := range cur.Items {
		if it.Book.ID != bookID {
			items = append(items, it)
		}
	}
	return s.save(ctx, items), nil
}

func (s *localCartStore) Clear(ctx context.Context, cur model.Cart) (model.Cart, error) {
	return s.save(ctx, nil), nil
}

// 書き込み失敗はログだけ（メモリ上のカートは更新する）
func (s *localCartStore) save(ctx context.Context, items []model.CartItem) model.Cart {
	cart := model.NewLocalCart(items)
	if err := s.items.SaveItems(ctx, cart.Items); err != nil {
		s.logger.Warn("local cart write failed", zap.Error(err))
	}
	return cart
}

// ---- サーバー ----

type remoteCartStore struct {
	gateway repo.CartGateway
	items   repo.LocalCartStore
}

func NewRemoteCartStore(gateway repo.CartGateway, items repo.LocalCartStore) CartStore {
	return &remoteCartStore{gateway: gateway, items: items}
}

func (s *remoteCartStore) Name() string { return "remote" }

func (s *remoteCartStore) Load(ctx context.Context) (model.Cart, error) {
	return s.gateway.Current(ctx)
}

// サーバーにカートが無ければこの1件で作る
func (s *remoteCartStore) Add(ctx context.Context, cur model.Cart, item model.CartItem) (model.Cart, error) {
	var err error
	if cur.ID == 0 || cur.Local {
		_, err = s.gateway.Create(ctx, []model.CartItem{item})
	} else {
		_, err = s.gateway.AddItem(ctx, cur.ID, item)
	}
	if err != nil {
		return model.Cart{}, err
	}
	return s.Load(ctx)
}

func (s *remoteCartStore) UpdateQuantity(ctx context.Context, cur model.Cart, bookID int64, quantity int64) (model.Cart, error) {
	if cur.ID == 0 || cur.Local {
		return model.Cart{}, errNoCartUpdate
	}
	if err := s.gateway.UpdateQuantity(ctx, cur.ID, bookID, quantity); err != nil {
		return model.Cart{}, err
	}
	return s.Load(ctx)
}

func (s *remoteCartStore) Remove(ctx context.Context, cur model.Cart, bookID int64) (model.Cart, error) {
	if cur.ID == 0 || cur.Local {
		return model.Cart{}, errNoCartRemove
	}
	if err := s.gateway.RemoveItem(ctx, cur.ID, bookID); err != nil {
		return model.Cart{}, err
	}
	return s.Load(ctx)
}

// 空にするだけなので再取得はしない。
// まだゲストのカートが残っていれば端末側を消す。
func (s *remoteCartStore) Clear(ctx context.Context, cur model.Cart) (model.Cart, error) {
	if cur.Local {
		if err := s.items.ClearItems(ctx); err != nil {
			return model.Cart{}, err
		}
		return model.NewAbsentRemoteCart(), nil
	}
	if cur.ID == 0 {
		return model.NewAbsentRemoteCart(), nil
	}
	if err := s.gateway.Clear(ctx, cur.ID); err != nil {
		return model.Cart{}, err
	}
	return model.Cart{ID: cur.ID, Items: []model.CartItem{}, Persisted: true}, nil
}
