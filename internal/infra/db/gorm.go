package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect は端末ローカルストアに接続して *gorm.DB を返す。
// postgres:// / postgresql:// なら共有DB（店頭端末など）、それ以外はsqliteファイル。
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("local store dsn is empty")
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if isPostgres(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	// sqliteはディレクトリが無いと開けない
	if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create local store dir: %w", err)
		}
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// ConnectAndMigrate は接続して local_entries を用意する。
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	gormDB, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&model.LocalEntry{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return gormDB, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
