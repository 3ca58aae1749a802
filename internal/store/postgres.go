package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink-go/internal/shortlink"
)

const uniqueViolationCode = "23505"

// PostgresStore is a PostgreSQL implementation of shortlink.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the schema. Visits reference their link with
// ON DELETE CASCADE, so removing a link removes its visits in the same
// transaction as the parent row.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS short_links (
			id           TEXT PRIMARY KEY,
			token        TEXT NOT NULL UNIQUE,
			original_url TEXT NOT NULL,
			alias        TEXT,
			created_at   TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ,
			click_count  BIGINT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS visits (
			id            TEXT PRIMARY KEY,
			short_link_id TEXT NOT NULL REFERENCES short_links(id) ON DELETE CASCADE,
			ip_address    TEXT NOT NULL,
			visited_at    TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_link_time
			ON visits (short_link_id, visited_at DESC);
	`

	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortlink.ShortLink) error {
	query := `
		INSERT INTO short_links (id, token, original_url, alias, created_at, expires_at, click_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		link.ID,
		string(link.Token),
		link.OriginalURL,
		nullableString(link.Alias),
		link.CreatedAt,
		link.ExpiresAt,
		link.ClickCount,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return shortlink.ErrAliasTaken
		}

		return err
	}

	return nil
}

func (p *PostgresStore) GetByToken(ctx context.Context, token shortlink.Token) (*shortlink.ShortLink, error) {
	query := `
		SELECT id, token, original_url, alias, created_at, expires_at, click_count
		FROM short_links
		WHERE token = $1
	`

	var link shortlink.ShortLink

	var alias *string

	err := p.pool.QueryRow(ctx, query, string(token)).Scan(
		&link.ID,
		&link.Token,
		&link.OriginalURL,
		&alias,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.ClickCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	if alias != nil {
		link.Alias = *alias
	}

	return &link, nil
}

func (p *PostgresStore) IncrementClicks(ctx context.Context, id string) error {
	// Single UPDATE so the increment is atomic at the database.
	query := `UPDATE short_links SET click_count = click_count + 1 WHERE id = $1`

	tag, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	// The visits FK cascades, so one statement removes the link and its
	// visits atomically.
	tag, err := p.pool.Exec(ctx, `DELETE FROM short_links WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) InsertVisit(ctx context.Context, visit *shortlink.Visit) error {
	query := `
		INSERT INTO visits (id, short_link_id, ip_address, visited_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		visit.ID,
		visit.ShortLinkID,
		visit.IPAddress,
		visit.VisitedAt,
	)

	return err
}

func (p *PostgresStore) RecentVisits(ctx context.Context, shortLinkID string, limit int) ([]shortlink.Visit, error) {
	query := `
		SELECT id, short_link_id, ip_address, visited_at
		FROM visits
		WHERE short_link_id = $1
		ORDER BY visited_at DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, shortLinkID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []shortlink.Visit

	for rows.Next() {
		var v shortlink.Visit
		if err := rows.Scan(&v.ID, &v.ShortLinkID, &v.IPAddress, &v.VisitedAt); err != nil {
			return nil, err
		}

		visits = append(visits, v)
	}

	return visits, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Compile-time check.
var _ shortlink.Repository = (*PostgresStore)(nil)
