package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/util"
)

// RateLimiterMiddleware gates signature submissions per client ip. Rejected
// requests get 429 with Retry-After and never reach the handler, so nothing
// is persisted.
func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	key := util.ClientIP(ctx)

	allowed, retryAfter := m.rateLimiter.Allow(key)
	if !allowed {
		m.app.Logger.Debugf("Rate limit exceeded for ip: %s", key)
		ctx.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests", util.GenerateErrorMessages(errors.New("too many requests, try again later"), "rate_limit"), nil)
		ctx.Abort()
		return
	}

	ctx.Next()
}
