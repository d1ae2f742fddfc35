package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ログイン・ログアウトを受け取る側（カートなど）
type SessionListener interface {
	OnLogin(ctx context.Context) error
	OnLogout(ctx context.Context) error
}

var (
	errInvalidToken = NewHTTPError(http.StatusUnauthorized, "invalid token")
	errTokenExpired = NewHTTPError(http.StatusUnauthorized, "token expired")
)

// SessionUsecase はIdPが発行したアクセストークンを保持する。
// secretが空なら署名は検証せず中身だけ読む（IdPを信頼する）。
type SessionUsecase struct {
	store  repo.SessionStore
	secret []byte
	clock  Clock
	logger *zap.Logger

	mu        sync.RWMutex
	session   model.Session
	listeners []SessionListener
}

// DI
func NewSessionUsecase(store repo.SessionStore, secret string, clock Clock, logger *zap.Logger) *SessionUsecase {
	return &SessionUsecase{
		store:  store,
		secret: []byte(secret),
		clock:  clock,
		logger: logger,
	}
}

func (u *SessionUsecase) AddListener(l SessionListener) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.listeners = append(u.listeners, l)
}

// Restore は保存済みセッションを読み込む（期限切れは捨てる）
func (u *SessionUsecase) Restore(ctx context.Context) error {
	s, err := u.store.Load(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		u.logger.Warn("stored session unreadable", zap.Error(err))
		return nil
	}

	if !s.Authenticated(u.clock.Now()) {
		if err := u.store.Delete(ctx); err != nil {
			u.logger.Warn("stale session delete failed", zap.Error(err))
		}
		return nil
	}

	u.mu.Lock()
	u.session = s
	u.mu.Unlock()
	return nil
}

// Login はトークンを検証して保存し、リスナーへ通知する
func (u *SessionUsecase) Login(ctx context.Context, rawToken string) (model.Session, error) {
	rawToken = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rawToken), "Bearer "))
	if rawToken == "" {
		return model.Session{}, errInvalidToken
	}

	s, err := u.parse(rawToken)
	if err != nil {
		return model.Session{}, err
	}

	if err := u.store.Save(ctx, s); err != nil {
		u.logger.Error("session save failed", zap.Error(err))
		return model.Session{}, &HTTPError{Status: http.StatusInternalServerError, Message: "session save failed", Err: err}
	}

	u.mu.Lock()
	u.session = s
	listeners := append([]SessionListener(nil), u.listeners...)
	u.mu.Unlock()

	u.logger.Info("logged in", zap.String("subject", s.Subject))

	// リスナー側の失敗はログだけ（ログイン自体は成功）
	for _, l := range listeners {
		if err := l.OnLogin(ctx); err != nil {
			u.logger.Warn("login listener failed", zap.Error(err))
		}
	}
	return s, nil
}

func (u *SessionUsecase) Logout(ctx context.Context) error {
	if err := u.store.Delete(ctx); err != nil {
		u.logger.Warn("session delete failed", zap.Error(err))
	}

	u.mu.Lock()
	subject := u.session.Subject
	u.session = model.Session{}
	listeners := append([]SessionListener(nil), u.listeners...)
	u.mu.Unlock()

	u.logger.Info("logged out", zap.String("subject", subject))

	for _, l := range listeners {
		if err := l.OnLogout(ctx); err != nil {
			u.logger.Warn("logout listener failed", zap.Error(err))
		}
	}
	return nil
}

func (u *SessionUsecase) Current() model.Session {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session
}

func (u *SessionUsecase) IsAuthenticated() bool {
	return u.Current().Authenticated(u.clock.Now())
}

// API呼び出し用（未ログインなら空）
func (u *SessionUsecase) AccessToken() string {
	s := u.Current()
	if !s.Authenticated(u.clock.Now()) {
		return ""
	}
	return s.Token
}

func (u *SessionUsecase) parse(rawToken string) (model.Session, error) {
	claims := jwt.MapClaims{}

	if len(u.secret) > 0 {
		token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return u.secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			var ve *jwt.ValidationError
			if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
				return model.Session{}, errTokenExpired
			}
			return model.Session{}, errInvalidToken
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
			return model.Session{}, errInvalidToken
		}
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return model.Session{}, errInvalidToken
	}

	// 期限なしのトークンは受け付けない
	exp, ok := claims["exp"].(float64)
	if !ok {
		return model.Session{}, errInvalidToken
	}

	s := model.Session{
		Token:     rawToken,
		Subject:   sub,
		Roles:     parseRoles(claims),
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if !u.clock.Now().Before(s.ExpiresAt) {
		return model.Session{}, errTokenExpired
	}
	return s, nil
}

// Keycloakの realm_access.roles
func parseRoles(claims jwt.MapClaims) []string {
	ra, ok := claims["realm_access"].(map[string]interface{})
	if !ok {
		return nil
	}
	raw, ok := ra["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
