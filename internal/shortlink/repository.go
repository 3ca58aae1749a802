package shortlink

import "context"

// Repository defines the storage operations the service is built on.
type Repository interface {
	// Insert persists a new link. Returns ErrAliasTaken when the token
	// collides with an existing one.
	Insert(ctx context.Context, link *ShortLink) error

	// GetByToken returns the link for a token, or ErrNotFound.
	GetByToken(ctx context.Context, token Token) (*ShortLink, error)

	// IncrementClicks adds one to the link's click count as a single
	// atomic operation at the store, so concurrent resolutions of the
	// same token do not lose updates.
	IncrementClicks(ctx context.Context, id string) error

	// Delete removes the link and all of its visits in one transaction.
	Delete(ctx context.Context, id string) error

	// InsertVisit persists a visit for an existing link.
	InsertVisit(ctx context.Context, visit *Visit) error

	// RecentVisits returns up to limit visits for a link, newest first.
	RecentVisits(ctx context.Context, shortLinkID string, limit int) ([]Visit, error)
}
