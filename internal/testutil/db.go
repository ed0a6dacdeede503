package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-roles-api/internal/core/database"
)

// OpenDB 打开一个独立的内存 SQLite，已建表并写入参考角色。
// 单连接：shared cache 下多连接并发写会报 table locked。
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := database.SeedRoles(context.Background(), db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}
