package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink-go/internal/shortlink"
	"github.com/serroba/shortlink-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(id, token string) *shortlink.ShortLink {
	return &shortlink.ShortLink{
		ID:          id,
		Token:       shortlink.Token(token),
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}
}

func TestMemoryStore_Insert(t *testing.T) {
	t.Run("inserts a link successfully", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Insert(context.Background(), newLink("id1", "abc123"))

		require.NoError(t, err)
	})

	t.Run("returns ErrAliasTaken on a duplicate token", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		err := s.Insert(context.Background(), newLink("id2", "abc123"))

		assert.ErrorIs(t, err, shortlink.ErrAliasTaken)
	})
}

func TestMemoryStore_GetByToken(t *testing.T) {
	t.Run("returns the link when found", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		link, err := s.GetByToken(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "id1", link.ID)
		assert.Equal(t, "https://example.com", link.OriginalURL)
	})

	t.Run("returns ErrNotFound when the token does not exist", func(t *testing.T) {
		s := store.NewMemoryStore()

		link, err := s.GetByToken(context.Background(), "notfound")

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})

	t.Run("returns a copy that does not alias internal state", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		link, err := s.GetByToken(context.Background(), "abc123")
		require.NoError(t, err)

		link.ClickCount = 99

		fresh, err := s.GetByToken(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(0), fresh.ClickCount)
	})
}

func TestMemoryStore_IncrementClicks(t *testing.T) {
	t.Run("increments the count by one", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		require.NoError(t, s.IncrementClicks(context.Background(), "id1"))
		require.NoError(t, s.IncrementClicks(context.Background(), "id1"))

		link, err := s.GetByToken(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), link.ClickCount)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.IncrementClicks(context.Background(), "missing")

		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Run("removes the link and its visits", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))
		_ = s.InsertVisit(context.Background(), &shortlink.Visit{
			ID:          "v1",
			ShortLinkID: "id1",
			IPAddress:   "10.0.0.1",
			VisitedAt:   time.Now(),
		})

		require.NoError(t, s.Delete(context.Background(), "id1"))

		_, err := s.GetByToken(context.Background(), "abc123")
		assert.ErrorIs(t, err, shortlink.ErrNotFound)

		visits, err := s.RecentVisits(context.Background(), "id1", 5)
		require.NoError(t, err)
		assert.Empty(t, visits)
	})

	t.Run("frees the token for reuse", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		require.NoError(t, s.Delete(context.Background(), "id1"))

		err := s.Insert(context.Background(), newLink("id2", "abc123"))
		assert.NoError(t, err)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Delete(context.Background(), "missing")

		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})
}

func TestMemoryStore_Visits(t *testing.T) {
	t.Run("rejects a visit for an unknown link", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.InsertVisit(context.Background(), &shortlink.Visit{
			ID:          "v1",
			ShortLinkID: "missing",
		})

		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})

	t.Run("returns visits newest first, capped at the limit", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Insert(context.Background(), newLink("id1", "abc123"))

		base := time.Now()
		for i := 0; i < 4; i++ {
			_ = s.InsertVisit(context.Background(), &shortlink.Visit{
				ID:          string(rune('a' + i)),
				ShortLinkID: "id1",
				IPAddress:   "10.0.0.1",
				VisitedAt:   base.Add(time.Duration(i) * time.Minute),
			})
		}

		visits, err := s.RecentVisits(context.Background(), "id1", 2)

		require.NoError(t, err)
		require.Len(t, visits, 2)
		assert.True(t, visits[0].VisitedAt.After(visits[1].VisitedAt))
	})
}
