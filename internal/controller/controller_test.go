package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	appcontext "github.com/mobiliza/peticoes/internal/app_context"
	"github.com/mobiliza/peticoes/internal/config"
	"github.com/mobiliza/peticoes/internal/controller"
	"github.com/mobiliza/peticoes/internal/middleware"
	"github.com/mobiliza/peticoes/internal/model"
	ratelimiter "github.com/mobiliza/peticoes/internal/rate_limiter"
	"github.com/mobiliza/peticoes/internal/repository"
	"github.com/mobiliza/peticoes/internal/route"
	"github.com/mobiliza/peticoes/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var registerValidatorsOnce sync.Once

func newTestRouter(t *testing.T, rateLimit int) (*gin.Engine, *appcontext.Application) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(util.JSONTagNameFunc)
			_ = v.RegisterValidation("strNotEmpty", util.StrNotEmpty)
		}
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Petition{}, &model.Signature{}, &model.LinkPage{}, &model.LinkPageItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.Config{
		Port:      "0",
		ENV:       "test",
		PublicURL: "http://petitions.test",
		RateLimiter: config.RateLimiterConfig{
			RequestsPerTimeFrame: rateLimit,
			TimeFrame:            time.Minute,
			Enabled:              true,
		},
	}

	sugar := zap.NewNop().Sugar()
	app := &appcontext.Application{
		Config:     &cfg,
		Logger:     sugar,
		Repository: repository.NewRepository(db, sugar),
	}

	limiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, sugar)
	mw := middleware.NewMiddleware(app, limiter)
	ctrl := controller.NewController(app)

	r := gin.New()
	r.GET("/health", ctrl.Index.Health)
	rApi := r.Group("/api")
	rApi.GET("/v1/me", ctrl.Index.Me)
	route.V1_Petitions(rApi, ctrl.Petition, ctrl.Signature, mw)
	route.V1_Signatures(rApi, ctrl.Signature, mw)
	route.V1_LinkPages(rApi, ctrl.LinkPage)

	return r, app
}

func performRequest(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var envelope struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}

	return envelope.Data
}

func decodePetition(t *testing.T, w *httptest.ResponseRecorder) model.Petition {
	t.Helper()

	var petition model.Petition
	data := decodeData(t, w)
	if err := json.Unmarshal(data["petition"], &petition); err != nil {
		t.Fatalf("failed to decode petition: %v", err)
	}
	return petition
}

func decodeSignature(t *testing.T, w *httptest.ResponseRecorder) model.Signature {
	t.Helper()

	var signature model.Signature
	data := decodeData(t, w)
	if err := json.Unmarshal(data["signature"], &signature); err != nil {
		t.Fatalf("failed to decode signature: %v", err)
	}
	return signature
}

func mustHaveStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodGet, "/health", nil, nil)
	mustHaveStatus(t, w, http.StatusOK)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}
