package handlers

import "time"

// CreateLinkRequest is the request body for creating a short link.
// Schema violations (malformed URL, over-long alias) are rejected with
// 422 before the handler runs; only an alias collision maps to 400.
type CreateLinkRequest struct {
	Body struct {
		URL       string     `doc:"The URL to shorten"                example:"https://example.com/very/long/path" format:"uri"  json:"url"`
		Alias     string     `doc:"Optional custom token"             example:"custom"                             json:"alias,omitempty"     maxLength:"20" required:"false"`
		ExpiresAt *time.Time `doc:"Optional expiry (RFC 3339)"        example:"2027-01-01T00:00:00Z"               json:"expiresAt,omitempty" required:"false"`
	}
}

// CreateLinkResponse is the response for a successfully created link.
type CreateLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Token       string `doc:"The short token"    example:"abc123xy"                           json:"token"`
		ShortURL    string `doc:"The full short URL" example:"http://localhost:8888/abc123xy"     json:"shortUrl"`
		OriginalURL string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"originalUrl"`
	}
}

// RedirectRequest is the request for resolving a short link.
type RedirectRequest struct {
	Token string `doc:"The short token" example:"abc123xy" path:"token"`
}

// RedirectResponse redirects to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// InfoRequest is the request for reading link details.
type InfoRequest struct {
	Token string `doc:"The short token" example:"abc123xy" path:"token"`
}

// InfoResponse is the public projection of a link.
type InfoResponse struct {
	Body struct {
		OriginalURL string    `doc:"The original URL"                  json:"originalUrl"`
		CreatedAt   time.Time `doc:"Creation time"                     json:"createdAt"`
		ClickCount  int64     `doc:"Number of successful resolutions"  json:"clickCount"`
	}
}

// DeleteRequest is the request for deleting a short link.
type DeleteRequest struct {
	Token string `doc:"The short token" example:"abc123xy" path:"token"`
}

// AnalyticsRequest is the request for reading link analytics.
type AnalyticsRequest struct {
	Token string `doc:"The short token" example:"abc123xy" path:"token"`
}

// AnalyticsResponse extends the link projection with recent visitors.
type AnalyticsResponse struct {
	Body struct {
		OriginalURL    string    `doc:"The original URL"                   json:"originalUrl"`
		CreatedAt      time.Time `doc:"Creation time"                      json:"createdAt"`
		ClickCount     int64     `doc:"Number of successful resolutions"   json:"clickCount"`
		RecentVisitors []string  `doc:"Most recent visitor IPs, newest first" json:"recentVisitors"`
	}
}
