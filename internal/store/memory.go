package store

import (
	"context"
	"sort"
	"sync"

	"github.com/serroba/shortlink-go/internal/shortlink"
)

// MemoryStore is an in-memory implementation of shortlink.Repository,
// used in tests and for running without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*shortlink.ShortLink
	tokens map[shortlink.Token]string // token -> link ID
	visits map[string][]shortlink.Visit
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*shortlink.ShortLink),
		tokens: make(map[shortlink.Token]string),
		visits: make(map[string][]shortlink.Visit),
	}
}

func (m *MemoryStore) Insert(_ context.Context, link *shortlink.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tokens[link.Token]; exists {
		return shortlink.ErrAliasTaken
	}

	stored := *link
	m.byID[link.ID] = &stored
	m.tokens[link.Token] = link.ID

	return nil
}

func (m *MemoryStore) GetByToken(_ context.Context, token shortlink.Token) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.tokens[token]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	link := *m.byID[id]

	return &link, nil
}

func (m *MemoryStore) IncrementClicks(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok {
		return shortlink.ErrNotFound
	}

	link.ClickCount++

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok {
		return shortlink.ErrNotFound
	}

	delete(m.tokens, link.Token)
	delete(m.byID, id)
	delete(m.visits, id)

	return nil
}

func (m *MemoryStore) InsertVisit(_ context.Context, visit *shortlink.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[visit.ShortLinkID]; !ok {
		return shortlink.ErrNotFound
	}

	m.visits[visit.ShortLinkID] = append(m.visits[visit.ShortLinkID], *visit)

	return nil
}

func (m *MemoryStore) RecentVisits(_ context.Context, shortLinkID string, limit int) ([]shortlink.Visit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visits := make([]shortlink.Visit, len(m.visits[shortLinkID]))
	copy(visits, m.visits[shortLinkID])

	sort.Slice(visits, func(i, j int) bool {
		return visits[i].VisitedAt.After(visits[j].VisitedAt)
	})

	if len(visits) > limit {
		visits = visits[:limit]
	}

	return visits, nil
}

// Compile-time check.
var _ shortlink.Repository = (*MemoryStore)(nil)
