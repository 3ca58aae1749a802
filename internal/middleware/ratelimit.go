package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware applying sliding-window rate
// limits keyed by client IP and User-Agent. Endpoints can override the
// limiter's defaults or opt out entirely via operation metadata under
// ratelimit.MetadataKey.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		var limits []ratelimit.LimitConfig

		if cfg := endpointConfig(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			limits = cfg.Limits
		}

		allowed, exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), limits)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			msg := "rate limit exceeded"
			if exceeded != nil {
				msg = fmt.Sprintf("rate limit exceeded: %d/%d requests in %s",
					exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)
				logger.Warn("rate limit exceeded",
					zap.String("path", operationPath(ctx)),
					zap.String("method", ctx.Method()),
					zap.Int64("count", exceeded.Count),
					zap.Int64("max", exceeded.Config.Max),
					zap.Duration("window", exceeded.Config.Window),
					zap.String("client_ip", clientIP(ctx)),
				)
			}

			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

			return
		}

		next(ctx)
	}
}

// endpointConfig extracts the rate limit config from operation
// metadata, if present.
func endpointConfig(ctx huma.Context) *ratelimit.EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[ratelimit.MetadataKey].(ratelimit.EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientKey hashes the client address and User-Agent into the limiter
// key, so the raw address never reaches the rate limit store.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}
