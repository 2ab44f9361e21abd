package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"pawstails/internal/config"
)

func NewPostgresConnection(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return pool, nil
}

// NewSQLiteConnection opens (or creates) the database file at path in WAL
// mode and applies the schema.
func NewSQLiteConnection(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return conn, nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id               BIGSERIAL PRIMARY KEY,
    title            TEXT NOT NULL,
    slug             TEXT NOT NULL UNIQUE,
    content          TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    image_url        TEXT NOT NULL DEFAULT '',
    author           TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords    TEXT NOT NULL DEFAULT '',
    published        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    autosaved_at     TIMESTAMPTZ,
    version          INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS article_versions (
    id               BIGSERIAL PRIMARY KEY,
    article_id       BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    version_number   INTEGER NOT NULL,
    title            TEXT NOT NULL,
    content          TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    image_url        TEXT NOT NULL DEFAULT '',
    author           TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords    TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (article_id, version_number)
);

CREATE INDEX IF NOT EXISTS idx_article_versions_article ON article_versions(article_id, created_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    title            TEXT NOT NULL,
    slug             TEXT NOT NULL UNIQUE,
    content          TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    image_url        TEXT NOT NULL DEFAULT '',
    author           TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords    TEXT NOT NULL DEFAULT '',
    published        INTEGER NOT NULL DEFAULT 1,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL,
    autosaved_at     TEXT,
    version          INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS article_versions (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id       INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    version_number   INTEGER NOT NULL,
    title            TEXT NOT NULL,
    content          TEXT NOT NULL,
    excerpt          TEXT NOT NULL DEFAULT '',
    image_url        TEXT NOT NULL DEFAULT '',
    author           TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords    TEXT NOT NULL DEFAULT '',
    created_at       TEXT NOT NULL,
    UNIQUE (article_id, version_number)
);

CREATE INDEX IF NOT EXISTS idx_article_versions_article ON article_versions(article_id, created_at);
`
