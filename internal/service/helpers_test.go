package service_test

import (
	"errors"
	"testing"

	"go_gpa_keep/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はトランザクションを開くためだけのDBを用意します。DB操作自体はモックされます。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// requireAppError はエラーが指定のコードと根本エラーを持つ AppError であることを確認します
func requireAppError(t *testing.T, err error, code string, sentinel error) *model.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr), "AppErrorではありません: %v", err)
	require.Equal(t, code, appErr.Detail.Code)
	if sentinel != nil {
		require.ErrorIs(t, err, sentinel)
	}
	return appErr
}

func ptr[T any](v T) *T {
	return &v
}
