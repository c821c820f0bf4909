package httpadapter

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	limiter "github.com/ulule/limiter/v3"
)

const requestIDHeader = "X-Request-ID"

func requestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := strings.TrimSpace(string(ctx.GetHeader(requestIDHeader)))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDHeader, id)
		ctx.Response.Header.Set(requestIDHeader, id)
		ctx.Next(c)
	}
}

// cacheControlMiddleware marks every /api/ response as revalidate-always.
func cacheControlMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		ctx.Next(c)
		if strings.HasPrefix(string(ctx.Path()), "/api/") {
			ctx.Response.Header.Set("Cache-Control", "no-cache")
		}
	}
}

func rateLimitMiddleware(l *limiter.Limiter) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		lc, err := l.Get(c, clientKey(ctx))
		if err != nil {
			hlog.CtxWarnf(c, "rate limiter unavailable: %v", err)
			ctx.Next(c)
			return
		}
		ctx.Response.Header.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		ctx.Response.Header.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		ctx.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))
		if lc.Reached {
			retryAfter := int(time.Until(time.Unix(lc.Reset, 0)).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			ctx.Response.Header.Set("Retry-After", strconv.Itoa(retryAfter))
			writeErrorBody(ctx, consts.StatusTooManyRequests, "rate_limited", "too many requests")
			ctx.Abort()
			return
		}
		ctx.Next(c)
	}
}

// clientKey is the first X-Forwarded-For address, or the peer address.
func clientKey(ctx *app.RequestContext) string {
	if fwd := string(ctx.GetHeader("X-Forwarded-For")); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if addr := ctx.RemoteAddr(); addr != nil {
		host := addr.String()
		if i := strings.LastIndexByte(host, ':'); i > 0 {
			host = host[:i]
		}
		return strings.Trim(host, "[]")
	}
	return "unknown"
}
