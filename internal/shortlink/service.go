package shortlink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecentVisitorLimit caps how many visitor IPs Analytics returns.
const RecentVisitorLimit = 5

// Service implements the short link operations over a Repository.
// It holds no state of its own; all state lives in the store.
type Service struct {
	repo   Repository
	tokens *Generator
}

// NewService creates a new short link service.
func NewService(repo Repository, tokens *Generator) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

// Create stores a new short link and returns its token.
//
// When an alias is given the store is pre-checked for a collision, but
// the insert itself is the authoritative check: a concurrent creation
// that slips past the pre-check still fails with ErrAliasTaken from the
// store's unique constraint.
func (s *Service) Create(ctx context.Context, originalURL, alias string, expiresAt *time.Time) (Token, error) {
	token := s.tokens.Generate(alias)

	if alias != "" {
		_, err := s.repo.GetByToken(ctx, token)
		if err == nil {
			return "", ErrAliasTaken
		}

		if !errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("check alias: %w", err)
		}
	}

	link := &ShortLink{
		ID:          uuid.NewString(),
		Token:       token,
		OriginalURL: originalURL,
		Alias:       alias,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
	}

	if err := s.repo.Insert(ctx, link); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the original URL for a token and counts the click.
// Expired links reject resolution but remain readable via Info, Delete
// and Analytics.
func (s *Service) Resolve(ctx context.Context, token Token) (string, error) {
	link, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}

	if link.Expired(time.Now()) {
		return "", ErrExpired
	}

	if err := s.repo.IncrementClicks(ctx, link.ID); err != nil {
		return "", fmt.Errorf("increment clicks: %w", err)
	}

	return link.OriginalURL, nil
}

// Info returns the link's projection without mutating anything.
func (s *Service) Info(ctx context.Context, token Token) (*Info, error) {
	link, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &Info{
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		ClickCount:  link.ClickCount,
	}, nil
}

// Delete removes the link and, with it, all of its visits.
func (s *Service) Delete(ctx context.Context, token Token) error {
	link, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, link.ID)
}

// RecordVisit logs one resolution of the link. It is called after the
// redirect has already been decided, so callers treat failures as
// best-effort and must not couple them to the redirect outcome.
func (s *Service) RecordVisit(ctx context.Context, token Token, ipAddress string) error {
	link, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	visit := &Visit{
		ID:          uuid.NewString(),
		ShortLinkID: link.ID,
		IPAddress:   ipAddress,
		VisitedAt:   time.Now(),
	}

	return s.repo.InsertVisit(ctx, visit)
}

// Analytics returns the link's projection plus its most recent visitor
// IPs, newest first.
func (s *Service) Analytics(ctx context.Context, token Token) (*Analytics, error) {
	link, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.RecentVisits(ctx, link.ID, RecentVisitorLimit)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}

	visitors := make([]string, 0, len(visits))
	for _, v := range visits {
		visitors = append(visitors, v.IPAddress)
	}

	return &Analytics{
		Info: Info{
			OriginalURL: link.OriginalURL,
			CreatedAt:   link.CreatedAt,
			ClickCount:  link.ClickCount,
		},
		RecentVisitors: visitors,
	}, nil
}
