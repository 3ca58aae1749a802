package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/analytics"
	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/serroba/shortlink-go/internal/shortlink"
	"go.uber.org/zap"
)

// LinkHandler handles short link operations.
type LinkHandler struct {
	service      *shortlink.Service
	baseURL      string
	publishVisit messaging.Publish[analytics.LinkVisitedEvent]
	logger       *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortlink.Service,
	baseURL string,
	publishVisit messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:      service,
		baseURL:      baseURL,
		publishVisit: publishVisit,
		logger:       logger,
	}
}

// CreateLink creates a short link, honoring an optional alias and
// expiry.
func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	token, err := h.service.Create(ctx, req.Body.URL, req.Body.Alias, req.Body.ExpiresAt)
	if err != nil {
		if errors.Is(err, shortlink.ErrAliasTaken) {
			return nil, huma.Error400BadRequest("alias already taken")
		}

		h.logger.Error("failed to create short link", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create short link")
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, token)

	resp := &CreateLinkResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Token = string(token)
	resp.Body.ShortURL = shortURL
	resp.Body.OriginalURL = req.Body.URL

	return resp, nil
}

// Redirect resolves a token and redirects to the original URL. The
// visit event is published after the redirect is decided; a publish
// failure is logged and never changes the response.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	originalURL, err := h.service.Resolve(ctx, shortlink.Token(req.Token))
	if err != nil {
		switch {
		case errors.Is(err, shortlink.ErrNotFound):
			return nil, huma.Error404NotFound("short link not found")
		case errors.Is(err, shortlink.ErrExpired):
			return nil, huma.Error404NotFound("short link expired")
		}

		h.logger.Error("failed to resolve short link",
			zap.String("token", req.Token),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		Token:     req.Token,
		IPAddress: meta.ClientIP,
		VisitedAt: time.Now(),
	}

	if err := h.publishVisit(event); err != nil {
		h.logger.Error("failed to publish visit event",
			zap.String("token", req.Token),
			zap.Error(err),
		)
	}

	// 302 rather than 301: expiring links must not be cached as
	// permanent by clients.
	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = originalURL

	return resp, nil
}

// Info returns the link's details without counting a click.
func (h *LinkHandler) Info(ctx context.Context, req *InfoRequest) (*InfoResponse, error) {
	info, err := h.service.Info(ctx, shortlink.Token(req.Token))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to get link info",
			zap.String("token", req.Token),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to get link info")
	}

	resp := &InfoResponse{}
	resp.Body.OriginalURL = info.OriginalURL
	resp.Body.CreatedAt = info.CreatedAt
	resp.Body.ClickCount = info.ClickCount

	return resp, nil
}

// DeleteLink removes a link and all of its visits.
func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteRequest) (*struct{}, error) {
	if err := h.service.Delete(ctx, shortlink.Token(req.Token)); err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to delete short link",
			zap.String("token", req.Token),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to delete short link")
	}

	return &struct{}{}, nil
}

// Analytics returns the link's details plus its most recent visitors.
func (h *LinkHandler) Analytics(ctx context.Context, req *AnalyticsRequest) (*AnalyticsResponse, error) {
	stats, err := h.service.Analytics(ctx, shortlink.Token(req.Token))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to get link analytics",
			zap.String("token", req.Token),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to get link analytics")
	}

	resp := &AnalyticsResponse{}
	resp.Body.OriginalURL = stats.OriginalURL
	resp.Body.CreatedAt = stats.CreatedAt
	resp.Body.ClickCount = stats.ClickCount
	resp.Body.RecentVisitors = stats.RecentVisitors

	return resp, nil
}
