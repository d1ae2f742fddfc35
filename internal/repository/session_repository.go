package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// ログインセッションを端末に保存する
type SessionStore interface {
	// 保存が無ければ ErrNotFound
	Load(ctx context.Context) (model.Session, error)
	Save(ctx context.Context, s model.Session) error
	Delete(ctx context.Context) error
}
