package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	APIBaseURL string        // バックエンドAPI（http://localhost:8080/api/v1）
	APITimeout time.Duration // 0ならhttp.Clientの既定

	Port string // ローカル画面用サーバーのポート（4200）

	LocalStoreDSN string // sqliteファイル or postgres://

	IDPJWTSecret string // 空ならトークン署名は検証しない

	CartMergeOnLogin bool // ログイン時にゲストカートをサーバーへ移す

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error
}

// LoadEnvFile は .env があれば読む（無ければ何もしない）
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Loadは環境変数
func Load() (Config, error) {
	timeout, err := optDuration("API_TIMEOUT", 0)
	if err != nil {
		return Config{}, err
	}
	merge, err := optBool("CART_MERGE_ON_LOGIN", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL: getenv("API_BASE_URL", "http://localhost:8080/api/v1"),
		APITimeout: timeout,

		Port: getenv("PORT", "4200"),

		LocalStoreDSN: getenv("LOCAL_STORE_DSN", defaultStorePath()),

		IDPJWTSecret: os.Getenv("IDP_JWT_SECRET"),

		CartMergeOnLogin: merge,

		GoEnv:    getenv("GO_ENV", "prod"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	//必須チェック
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return Config{}, fmt.Errorf("API_BASE_URL must be http(s) url")
	}
	if _, err := strconv.Atoi(strings.TrimPrefix(cfg.Port, ":")); err != nil {
		return Config{}, fmt.Errorf("PORT must be number: %w", err)
	}
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}

	return cfg, nil
}

// Addr は echo に渡す :port
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func optBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}

func optDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// ~/.storefront/local.db（HOMEが取れなければカレント）
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "storefront.db"
	}
	return home + string(os.PathSeparator) + ".storefront" + string(os.PathSeparator) + "local.db"
}
