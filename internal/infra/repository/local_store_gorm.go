package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// localStorageのキー
const (
	CartItemsKey   = "cart_items"
	AuthSessionKey = "auth_session"
)

// local_entries の1キーを読み書きする
type LocalGormStore struct {
	db *gorm.DB
}

// DI
func NewLocalGormStore(db *gorm.DB) *LocalGormStore {
	return &LocalGormStore{db: db}
}

// キーの値を取得（無ければ ErrNotFound）
func (r *LocalGormStore) Get(ctx context.Context, key string) (string, error) {
	var entry model.LocalEntry

	err := r.db.WithContext(ctx).
		Where("entry_key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// キーに値を保存（あれば上書き）
func (r *LocalGormStore) Put(ctx context.Context, key string, value string) error {
	entry := model.LocalEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// キーを削除（無くてもエラーにしない）
func (r *LocalGormStore) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&model.LocalEntry{}).Error
}

// ---- カート明細 ----

type localCartGormRepository struct {
	store *LocalGormStore
}

func NewLocalCartRepository(store *LocalGormStore) repo.LocalCartStore {
	return &localCartGormRepository{store: store}
}

func (r *localCartGormRepository) LoadItems(ctx context.Context) ([]model.CartItem, error) {
	raw, err := r.store.Get(ctx, CartItemsKey)
	if err != nil {
		return nil, err
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CartItemsKey, err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

func (r *localCartGormRepository) SaveItems(ctx context.Context, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", CartItemsKey, err)
	}
	return r.store.Put(ctx, CartItemsKey, string(b))
}

func (r *localCartGormRepository) ClearItems(ctx context.Context) error {
	return r.store.Delete(ctx, CartItemsKey)
}

// ---- セッション ----

type sessionGormRepository struct {
	store *LocalGormStore
}

func NewSessionRepository(store *LocalGormStore) repo.SessionStore {
	return &sessionGormRepository{store: store}
}

func (r *sessionGormRepository) Load(ctx context.Context) (model.Session, error) {
	raw, err := r.store.Get(ctx, AuthSessionKey)
	if err != nil {
		return model.Session{}, err
	}

	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.Session{}, fmt.Errorf("decode %s: %w", AuthSessionKey, err)
	}
	return s, nil
}

func (r *sessionGormRepository) Save(ctx context.Context, s model.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", AuthSessionKey, err)
	}
	return r.store.Put(ctx, AuthSessionKey, string(b))
}

func (r *sessionGormRepository) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, AuthSessionKey)
}
