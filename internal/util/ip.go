package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP returns the first entry of the X-Forwarded-For header when present,
// otherwise the socket's remote address. Signatures store this value and the
// rate limiter keys on it, so it must never come from the request body.
func ClientIP(ctx *gin.Context) string {
	forwarded := ctx.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(ctx.Request.RemoteAddr)
	if err != nil {
		return ctx.Request.RemoteAddr
	}

	return host
}
