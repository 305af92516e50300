package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	appcontext "github.com/mobiliza/peticoes/internal/app_context"
	"github.com/mobiliza/peticoes/internal/config"
	"github.com/mobiliza/peticoes/internal/controller"
	"github.com/mobiliza/peticoes/internal/database"
	"github.com/mobiliza/peticoes/internal/env"
	filestorage "github.com/mobiliza/peticoes/internal/file_storage"
	"github.com/mobiliza/peticoes/internal/middleware"
	ratelimiter "github.com/mobiliza/peticoes/internal/rate_limiter"
	"github.com/mobiliza/peticoes/internal/repository"
	"github.com/mobiliza/peticoes/internal/route"
	"github.com/mobiliza/peticoes/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(util.JSONTagNameFunc)
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	repo := repository.NewRepository(db, logger)
	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		S3:         s3,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Health)
	r.GET("/health", _controller.Index.Health)

	rApi := r.Group("/api")

	rApi.GET("/v1/me", _controller.Index.Me)
	route.V1_Petitions(rApi, _controller.Petition, _controller.Signature, _middleware)
	route.V1_Signatures(rApi, _controller.Signature, _middleware)
	route.V1_LinkPages(rApi, _controller.LinkPage)
	route.V1_File(rApi, _controller.File)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
