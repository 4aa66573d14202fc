package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"addon-indexer/internal/addon"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound indicates no add-on record has the requested ID.
	ErrNotFound = errors.New("add-on not found")
	// ErrExists indicates an add-on record with the ID already exists.
	ErrExists = errors.New("add-on already exists")
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS addons (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	author          TEXT NOT NULL,
	version         TEXT NOT NULL,
	category        TEXT NOT NULL,
	description     TEXT NOT NULL,
	license         TEXT NOT NULL DEFAULT '',
	released        DATE NOT NULL,
	updated         DATE,
	related_objects TEXT[] NOT NULL DEFAULT '{}',
	stored_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var columns = []string{
	"id", "title", "author", "version", "category", "description",
	"license", "released", "updated", "related_objects",
}

// DB is the subset of pgxpool.Pool used by AddonStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// AddonStore persists add-on metadata records in PostgreSQL.
type AddonStore struct {
	db DB
	sq sq.StatementBuilderType
}

// NewAddonStore creates a store over a pgx pool.
func NewAddonStore(db DB) *AddonStore {
	return &AddonStore{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Connect opens and pings a pgx pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Debug().Msg("Connected to PostgreSQL")
	return pool, nil
}

// EnsureSchema creates the addons table if needed.
func (s *AddonStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create addons table: %w", err)
	}
	return nil
}

// Fetch returns the add-on with the given ID.
func (s *AddonStore) Fetch(ctx context.Context, id string) (*addon.Addon, error) {
	sqlStr, args, err := s.sq.Select(columns...).From("addons").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	a, err := scanAddon(s.db.QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch add-on %s: %w", id, err)
	}
	return a, nil
}

// List returns all add-ons ordered by ID.
func (s *AddonStore) List(ctx context.Context) ([]*addon.Addon, error) {
	sqlStr, args, err := s.sq.Select(columns...).From("addons").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list add-ons: %w", err)
	}
	defer rows.Close()

	var out []*addon.Addon
	for rows.Next() {
		a, err := scanAddon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan add-on: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list add-ons: %w", err)
	}
	return out, nil
}

// Create inserts a new add-on record.
func (s *AddonStore) Create(ctx context.Context, a *addon.Addon) error {
	sqlStr, args, err := s.sq.Insert("addons").Columns(columns...).Values(values(a)...).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrExists, a.ID)
		}
		return fmt.Errorf("create add-on %s: %w", a.ID, err)
	}

	log.Info().Str("addon", a.ID).Int("related", len(a.RelatedObjects)).Msg("Created add-on record")
	return nil
}

// Update replaces every field of an existing add-on record.
func (s *AddonStore) Update(ctx context.Context, a *addon.Addon) error {
	q := s.sq.Update("addons").Where(sq.Eq{"id": a.ID}).Set("stored_at", sq.Expr("now()"))
	vals := values(a)
	for i, col := range columns[1:] {
		q = q.Set(col, vals[i+1])
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := s.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update add-on %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}

	log.Info().Str("addon", a.ID).Int("related", len(a.RelatedObjects)).Msg("Updated add-on record")
	return nil
}

// Save creates the record or updates it when it already exists.
func (s *AddonStore) Save(ctx context.Context, a *addon.Addon) error {
	err := s.Update(ctx, a)
	if errors.Is(err, ErrNotFound) {
		return s.Create(ctx, a)
	}
	return err
}

// Remove deletes the add-on record with the given ID.
func (s *AddonStore) Remove(ctx context.Context, id string) error {
	sqlStr, args, err := s.sq.Delete("addons").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("remove add-on %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	log.Info().Str("addon", id).Msg("Removed add-on record")
	return nil
}

func values(a *addon.Addon) []any {
	related := a.RelatedObjects
	if related == nil {
		related = []string{}
	}
	return []any{
		a.ID, a.Title, a.Author, a.Version, a.Category, a.Description,
		a.License, a.Released, nullTime(a.Updated), related,
	}
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func scanAddon(row pgx.Row) (*addon.Addon, error) {
	var (
		a       addon.Addon
		updated *time.Time
	)
	err := row.Scan(&a.ID, &a.Title, &a.Author, &a.Version, &a.Category, &a.Description,
		&a.License, &a.Released, &updated, &a.RelatedObjects)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		a.Updated = *updated
	}
	return &a, nil
}
