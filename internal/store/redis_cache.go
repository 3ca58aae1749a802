package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink-go/internal/shortlink"
)

// CachedRepository wraps a shortlink.Repository with Redis caching for
// token lookups. Entries are invalidated whenever the underlying row
// changes (click increment, delete), so readers never observe a stale
// click count.
type CachedRepository struct {
	store     shortlink.Repository
	client    *redis.Client
	keyPrefix string
	idPrefix  string
	ttl       time.Duration
}

// NewCachedRepository creates a new Redis-cached repository decorator.
func NewCachedRepository(
	store shortlink.Repository, client *redis.Client, ttl time.Duration,
) *CachedRepository {
	return &CachedRepository{
		store:     store,
		client:    client,
		keyPrefix: "link:",
		idPrefix:  "link_token:",
		ttl:       ttl,
	}
}

// Insert stores the link in the underlying store and write-through
// populates the cache.
func (r *CachedRepository) Insert(ctx context.Context, link *shortlink.ShortLink) error {
	if err := r.store.Insert(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

// GetByToken retrieves a link by its token, checking the cache first.
func (r *CachedRepository) GetByToken(ctx context.Context, token shortlink.Token) (*shortlink.ShortLink, error) {
	if link, err := r.getFromCache(ctx, token); err == nil {
		return link, nil
	}

	link, err := r.store.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// IncrementClicks forwards to the store and drops the cache entry so
// the next read observes the new count.
func (r *CachedRepository) IncrementClicks(ctx context.Context, id string) error {
	if err := r.store.IncrementClicks(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)

	return nil
}

// Delete forwards to the store and drops the cache entry.
func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)

	return nil
}

// InsertVisit forwards to the store. Visits are never cached.
func (r *CachedRepository) InsertVisit(ctx context.Context, visit *shortlink.Visit) error {
	return r.store.InsertVisit(ctx, visit)
}

// RecentVisits forwards to the store.
func (r *CachedRepository) RecentVisits(ctx context.Context, shortLinkID string, limit int) ([]shortlink.Visit, error) {
	return r.store.RecentVisits(ctx, shortLinkID, limit)
}

func (r *CachedRepository) getFromCache(ctx context.Context, token shortlink.Token) (*shortlink.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.keyPrefix+string(token)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortlink.ErrNotFound
	}

	link := &shortlink.ShortLink{
		ID:          result["id"],
		Token:       shortlink.Token(result["token"]),
		OriginalURL: result["original_url"],
		Alias:       result["alias"],
	}

	if nanos, err := strconv.ParseInt(result["created_at"], 10, 64); err == nil {
		link.CreatedAt = time.Unix(0, nanos)
	}

	if ts, ok := result["expires_at"]; ok && ts != "" {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			expires := time.Unix(0, nanos)
			link.ExpiresAt = &expires
		}
	}

	if clicks, err := strconv.ParseInt(result["click_count"], 10, 64); err == nil {
		link.ClickCount = clicks
	}

	return link, nil
}

func (r *CachedRepository) cacheLink(ctx context.Context, link *shortlink.ShortLink) {
	key := r.keyPrefix + string(link.Token)

	expiresAt := ""
	if link.ExpiresAt != nil {
		expiresAt = strconv.FormatInt(link.ExpiresAt.UnixNano(), 10)
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":           link.ID,
		"token":        string(link.Token),
		"original_url": link.OriginalURL,
		"alias":        link.Alias,
		"created_at":   link.CreatedAt.UnixNano(),
		"expires_at":   expiresAt,
		"click_count":  link.ClickCount,
	})

	// Reverse index so invalidation by ID can find the token key.
	pipe.Set(ctx, r.idPrefix+link.ID, string(link.Token), r.ttl)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

func (r *CachedRepository) invalidate(ctx context.Context, id string) {
	token, err := r.client.Get(ctx, r.idPrefix+id).Result()
	if err != nil {
		return
	}

	_, _ = r.client.Del(ctx, r.keyPrefix+token, r.idPrefix+id).Result()
}

// Shutdown is a no-op for CachedRepository (client managed externally).
func (r *CachedRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortlink.Repository = (*CachedRepository)(nil)
