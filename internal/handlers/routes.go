package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/ratelimit"
)

// RegisterRoutes registers all short link routes with per-endpoint rate
// limit configuration. Write operations get stricter limits than the
// high-traffic redirect path.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short link",
		Description: "Creates a short link, optionally with a custom alias and an expiry.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
					{Window: 24 * time.Hour, Max: 500},
				},
			},
		},
	}, linkHandler.CreateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{token}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL and counts the click. Expired links return 404.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, linkHandler.Redirect)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/info/{token}",
		Summary:     "Get link details",
		Description: "Returns the original URL, creation time and click count.",
		Tags:        []string{"Links"},
	}, linkHandler.Info)

	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/delete/{token}",
		Summary:       "Delete short link",
		Description:   "Removes the link and all of its recorded visits.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, linkHandler.DeleteLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/analytics/{token}",
		Summary:     "Get link analytics",
		Description: "Returns the link details plus the most recent visitor IPs.",
		Tags:        []string{"Links"},
	}, linkHandler.Analytics)
}
