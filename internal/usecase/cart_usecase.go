package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ログイン状態（IdP連携側が持つ）
type Authenticator interface {
	IsAuthenticated() bool
}

type CartOptions struct {
	// ログイン時にゲストのカートをサーバー側へ移す（既定は破棄）
	MergeOnLogin bool
}

// CartUsecase はカートの唯一の書き手。
// 保存先（local/remote）はセッションが変わったときに選び直す。
type CartUsecase struct {
	state  *CartState
	local  CartStore
	remote CartStore
	items  repo.LocalCartStore
	books  repo.BookRepository
	auth   Authenticator
	opts   CartOptions
	logger *zap.Logger

	mu     sync.RWMutex
	active CartStore
}

// DI
func NewCartUsecase(
	gateway repo.CartGateway,
	items repo.LocalCartStore,
	books repo.BookRepository,
	auth Authenticator,
	opts CartOptions,
	logger *zap.Logger,
) *CartUsecase {
	u := &CartUsecase{
		state:  NewCartState(model.NewLocalCart(nil)),
		local:  NewLocalCartStore(items, logger),
		remote: NewRemoteCartStore(gateway, items),
		items:  items,
		books:  books,
		auth:   auth,
		opts:   opts,
		logger: logger,
	}
	u.selectStore()
	return u
}

// handlerから追加するときの入力
type AddItemInput struct {
	BookID   int64
	Title    string
	Price    decimal.Decimal
	Image    string
	Quantity int64
}

// Load は起動時の読み込み（ログイン状態で読み先が変わる）
func (u *CartUsecase) Load(ctx context.Context) (model.Cart, error) {
	store := u.selectStore()
	return u.run(ctx, "load", func(_ model.Cart) (model.Cart, error) {
		return store.Load(ctx)
	})
}

// AddItem は同じ本なら数量加算、無ければ追加。数量0は1として扱う
func (u *CartUsecase) AddItem(ctx context.Context, in AddItemInput) (model.Cart, error) {
	if in.BookID <= 0 {
		return u.reject(errInvalidBookID)
	}
	if in.Quantity < 0 {
		return u.reject(errInvalidQuantity)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item := model.CartItem{
		Book: model.BookRef{
			ID:    in.BookID,
			Title: in.Title,
			Price: in.Price,
			Image: in.Image,
		},
		Quantity: in.Quantity,
	}

	store := u.store()
	return u.run(ctx, "add", func(cur model.Cart) (model.Cart, error) {
		return store.Add(ctx, cur, item)
	})
}

// AddBook はカタログから本を引いて追加する
func (u *CartUsecase) AddBook(ctx context.Context, bookID int64, quantity int64) (model.Cart, error) {
	if bookID <= 0 {
		return u.reject(errInvalidBookID)
	}
	if u.books == nil {
		return u.reject(NewHTTPError(http.StatusNotImplemented, "catalog unavailable"))
	}

	b, err := u.books.FindByID(ctx, bookID)
	if errors.Is(err, repo.ErrNotFound) {
		return u.reject(NewHTTPError(http.StatusNotFound, "book not found"))
	}
	if err != nil {
		u.logger.Error("book lookup failed", zap.Int64("book_id", bookID), zap.Error(err))
		return u.reject(opFailed("lookup", err))
	}

	ref := b.Ref()
	return u.AddItem(ctx, AddItemInput{
		BookID:   ref.ID,
		Title:    ref.Title,
		Price:    ref.Price,
		Image:    ref.Image,
		Quantity: quantity,
	})
}

// 数量変更（1未満はI/Oの前に弾く）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, bookID int64, quantity int64) (model.Cart, error) {
	if quantity < 1 {
		return u.reject(errInvalidQuantity)
	}
	if bookID <= 0 {
		return u.reject(errInvalidBookID)
	}

	store := u.store()
	return u.run(ctx, "update", func(cur model.Cart) (model.Cart, error) {
		return store.UpdateQuantity(ctx, cur, bookID, quantity)
	})
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, bookID int64) (model.Cart, error) {
	if bookID <= 0 {
		return u.reject(errInvalidBookID)
	}

	store := u.store()
	return u.run(ctx, "remove", func(cur model.Cart) (model.Cart, error) {
		return store.Remove(ctx, cur, bookID)
	})
}

func (u *CartUsecase) ClearCart(ctx context.Context) (model.Cart, error) {
	store := u.store()
	return u.run(ctx, "clear", func(cur model.Cart) (model.Cart, error) {
		return store.Clear(ctx, cur)
	})
}

// Reset はログアウト・注文完了時に空のローカルカートへ戻す
func (u *CartUsecase) Reset(ctx context.Context) model.Cart {
	if err := u.items.ClearItems(ctx); err != nil {
		u.logger.Warn("local cart clear failed", zap.Error(err))
	}
	empty := model.NewLocalCart(nil)
	u.state.Publish(empty)
	u.state.SetError("")
	return empty
}

// OnLogin はサーバーのカートを読み直す。
// ゲストのカートは MergeOnLogin でなければ破棄する。
// 移し切れなかった分は端末に残し、次のログインでもう一度移す。
func (u *CartUsecase) OnLogin(ctx context.Context) error {
	guest := u.state.Current()
	store := u.selectStore()

	if _, err := u.run(ctx, "load", func(_ model.Cart) (model.Cart, error) {
		return store.Load(ctx)
	}); err != nil {
		return err
	}

	pending := u.guestItems(ctx, guest)
	if len(pending) == 0 {
		return nil
	}

	if u.opts.MergeOnLogin {
		for i, it := range pending {
			if _, err := u.run(ctx, "merge", func(cur model.Cart) (model.Cart, error) {
				return store.Add(ctx, cur, it)
			}); err != nil {
				if serr := u.items.SaveItems(ctx, pending[i:]); serr != nil {
					u.logger.Warn("local cart write failed", zap.Error(serr))
				}
				u.logger.Warn("guest cart merge incomplete",
					zap.Int("merged", i),
					zap.Int("left", len(pending)-i))
				return err
			}
		}
		u.logger.Info("guest cart merged on login", zap.Int("items", len(pending)))
	} else {
		u.logger.Warn("guest cart discarded on login", zap.Int("items", len(pending)))
	}

	if err := u.items.ClearItems(ctx); err != nil {
		u.logger.Warn("local cart clear failed", zap.Error(err))
	}
	return nil
}

// 端末に保存されたゲストの明細（書き込みに失敗していたら画面上のカート）
func (u *CartUsecase) guestItems(ctx context.Context, guest model.Cart) []model.CartItem {
	saved, _ := u.local.Load(ctx)
	if len(saved.Items) > 0 {
		return saved.Items
	}
	if guest.Local {
		return guest.Items
	}
	return nil
}

// OnLogout は保存先をローカルに戻すだけ（カートは呼び出し側がReset）
func (u *CartUsecase) OnLogout(ctx context.Context) error {
	u.selectStore()
	return nil
}

func (u *CartUsecase) Current() model.Cart {
	return u.state.Current()
}

func (u *CartUsecase) Total() decimal.Decimal {
	return u.state.Current().Total()
}

func (u *CartUsecase) Count() int64 {
	return u.state.Current().Count()
}

func (u *CartUsecase) Subscribe() (<-chan model.Cart, func()) {
	return u.state.Subscribe()
}

// 画面向けの直近エラー
func (u *CartUsecase) LastError() string {
	return u.state.LastError()
}

// StoreName は現在の保存先（local/remote）
func (u *CartUsecase) StoreName() string {
	return u.store().Name()
}

func (u *CartUsecase) selectStore() CartStore {
	next := u.local
	if u.auth != nil && u.auth.IsAuthenticated() {
		next = u.remote
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = next
	return next
}

func (u *CartUsecase) store() CartStore {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.active
}

// run は操作を実行して結果を配る。
// 404は「カートがまだ無い」として空に戻し、それ以外はログを出して op 付きで返す。
func (u *CartUsecase) run(ctx context.Context, op string, fn func(cur model.Cart) (model.Cart, error)) (model.Cart, error) {
	cur := u.state.Current()

	next, err := fn(cur)
	if err == nil {
		u.state.Publish(next)
		u.state.SetError("")
		return next, nil
	}

	if errors.Is(err, repo.ErrNotFound) {
		absent := model.NewAbsentRemoteCart()
		u.state.Publish(absent)
		u.state.SetError("")
		return absent, nil
	}

	if he, ok := AsHTTPError(err); ok {
		u.state.SetError(he.Message)
		return cur, err
	}

	u.logger.Error("cart operation failed",
		zap.String("op", op),
		zap.String("store", u.store().Name()),
		zap.Error(err))

	wrapped := opFailed(op, err)
	u.state.SetError(wrapped.Message)
	return cur, wrapped
}

func (u *CartUsecase) reject(err error) (model.Cart, error) {
	if he, ok := AsHTTPError(err); ok {
		u.state.SetError(he.Message)
	}
	return u.state.Current(), err
}
