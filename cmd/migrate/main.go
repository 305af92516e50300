package main

import (
	"github.com/mobiliza/peticoes/internal/config"
	"github.com/mobiliza/peticoes/internal/database"
	"github.com/mobiliza/peticoes/internal/env"
	"github.com/mobiliza/peticoes/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	migrateErr := db.AutoMigrate(
		&model.Petition{},
		&model.Signature{},
		&model.LinkPage{},
		&model.LinkPageItem{},
	)
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}

	logger.Info("Migration completed")
}
