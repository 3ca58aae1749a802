package shortlink

import "time"

// Token is the short path segment a link is reachable under,
// either generated or chosen by the caller as an alias.
type Token string

// ShortLink represents a shortened URL record.
type ShortLink struct {
	ID          string
	Token       Token
	OriginalURL string
	Alias       string // empty unless the caller picked the token
	CreatedAt   time.Time
	ExpiresAt   *time.Time // nil means the link never expires
	ClickCount  int64
}

// Expired reports whether the link is past its expiry at the given time.
// Links without an expiry never expire.
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// Visit is one recorded resolution of a short link.
// Visits are owned by their link and are removed with it.
type Visit struct {
	ID          string
	ShortLinkID string
	IPAddress   string
	VisitedAt   time.Time
}

// Info is the public projection of a short link.
type Info struct {
	OriginalURL string
	CreatedAt   time.Time
	ClickCount  int64
}

// Analytics extends Info with the most recent visitor IPs, newest first.
type Analytics struct {
	Info
	RecentVisitors []string
}
