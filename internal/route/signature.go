package route

import (
	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/controller"
	"github.com/mobiliza/peticoes/internal/middleware"
)

func V1_Signatures(r *gin.RouterGroup, sc *controller.SignatureController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/signatures")
	{
		v1.GET("", sc.ListSignatures)
		v1.POST("", middleware.RateLimiterMiddleware, sc.CreateSignature)
	}
}
