package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ログイン状態を見る（usecase.Authenticator と同じ形）
type Authenticator interface {
	IsAuthenticated() bool
}

// RequireSession はログインしていなければ401を返す。
// トークン自体はセッション登録時に検証済み。
func RequireSession(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if auth == nil || !auth.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
