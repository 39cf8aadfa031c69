package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gormDB
}

func newTestUser(t *testing.T, gormDB *gorm.DB, email string) *db.User {
	t.Helper()

	user := db.User{Email: email, Hash: "hash"}
	require.NoError(t, gormDB.Create(&user).Error)
	return &user
}

func strPtr(s string) *string {
	return &s
}
