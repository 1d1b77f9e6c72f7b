// Package dbtest 为测试提供独立的内存数据库
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/database"
)

// New 每个测试一个独立的内存库, 单连接保证事务内外看到同一份数据
// SQLite 忽略 FOR UPDATE, 并发审批的行锁只在 MySQL/PostgreSQL 上生效, 这里不覆盖
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:       "sqlite",
		Database:     fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
		AutoMigrate:  true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
