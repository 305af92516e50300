package appcontext

import (
	"github.com/minio/minio-go/v7"
	"github.com/mobiliza/peticoes/internal/config"
	"github.com/mobiliza/peticoes/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// S3 stores uploaded petition branding images.
	S3 *minio.Client
}
