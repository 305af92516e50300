package route

import (
	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/controller"
)

func V1_LinkPages(r *gin.RouterGroup, lc *controller.LinkPageController) {
	v1 := r.Group("/v1/link-pages")
	{
		v1.GET("", lc.ListLinkPages)
		v1.GET("/:key", lc.GetLinkPage)
		v1.POST("", lc.CreateLinkPage)
		v1.PATCH("/:key", lc.UpdateLinkPage)
	}
}
