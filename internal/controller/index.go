package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/util"
)

type IndexController struct {
	*baseController
}

// Health serves the liveness probe. Fixed payload, no dependencies touched.
func (ic IndexController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": util.GetAppName(),
	})
}

// Me is a stub kept for front end compatibility; the platform has no
// authentication layer.
func (ic IndexController) Me(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"full_name": "Usuário",
		"email":     "user@example.com",
	})
}
