package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsAllowMethods  = "GET,OPTIONS"
	corsAllowHeaders  = "Content-Type,X-Request-ID"
	corsExposeHeaders = "X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset,Retry-After"
)

// corsMiddleware sets CORS headers on every response and answers preflight
// requests with 204 before routing.
func corsMiddleware(origin string) app.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c context.Context, ctx *app.RequestContext) {
		h := &ctx.Response.Header
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		if origin != "*" {
			h.Set("Vary", "Origin")
		}
		if string(ctx.Method()) == consts.MethodOptions {
			h.Set("Access-Control-Max-Age", "600")
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
