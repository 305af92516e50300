package route

import (
	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/controller"
)

func V1_File(r *gin.RouterGroup, fc *controller.FileController) {
	v1 := r.Group("/v1/upload")
	{
		v1.POST("", fc.UploadFile)
	}
}
