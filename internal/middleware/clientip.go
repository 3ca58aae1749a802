package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// clientIP resolves the originating client address. Proxy headers win
// over the connection address: the first X-Forwarded-For hop is the
// original client, X-Real-IP is the single-proxy equivalent. Both the
// visit records and the rate limiter key off this value, so they must
// agree on it.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
