package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mobiliza/peticoes/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Petition{},
		&model.Signature{},
		&model.LinkPage{},
		&model.LinkPageItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewRepository(db, zap.NewNop().Sugar())
}
