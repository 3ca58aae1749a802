package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/handlers"
)

// RequestMeta captures the client address, User-Agent and referrer
// into the request context before any operation runs. The redirect
// handler reads the address back out when it publishes a visit.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}
