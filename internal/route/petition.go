package route

import (
	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/controller"
	"github.com/mobiliza/peticoes/internal/middleware"
)

// The :key segment accepts either the petition uuid or its slug; the update
// route resolves ids only.
func V1_Petitions(r *gin.RouterGroup, pc *controller.PetitionController, sc *controller.SignatureController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/petitions")
	{
		v1.GET("", pc.ListPetitions)
		v1.GET("/filter", pc.FilterPetitions)
		v1.POST("", pc.CreatePetition)
		v1.PATCH("/:key", pc.UpdatePetition)

		v1.GET("/:key", pc.GetPetition)
		v1.GET("/:key/stats", pc.GetPetitionStats)
		v1.GET("/:key/qrcode", pc.ServePetitionQRCode)
		v1.GET("/:key/signatures", sc.ListPetitionSignatures)
		v1.GET("/:key/signatures/export", pc.ExportPetitionSignatures)

		// Only the public signing path is rate limited.
		v1.POST("/:key/signatures", middleware.RateLimiterMiddleware, sc.SignPetition)
	}
}
