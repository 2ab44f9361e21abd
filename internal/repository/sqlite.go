package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawstails/internal/models"
)

// SQLite keeps timestamps as fixed-width UTC text so they sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func sqliteNow() string { return time.Now().UTC().Format(sqliteTimeLayout) }

func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type sqliteArticleRepo struct{ db *sql.DB }

// NewSQLiteArticleRepo is the ArticleRepo used with DB_DRIVER=sqlite.
func NewSQLiteArticleRepo(db *sql.DB) ArticleRepo { return &sqliteArticleRepo{db: db} }

func scanSQLiteArticle(row rowScanner) (*models.Article, error) {
	var (
		a                models.Article
		created, updated string
		autosaved        sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.ImageURL, &a.Author,
		&a.MetaDescription, &a.MetaKeywords, &a.Published,
		&created, &updated, &autosaved, &a.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseSQLiteTime(created); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseSQLiteTime(updated); err != nil {
		return nil, err
	}
	if autosaved.Valid {
		t, err := parseSQLiteTime(autosaved.String)
		if err != nil {
			return nil, err
		}
		a.AutosavedAt = &t
	}
	return &a, nil
}

func (r *sqliteArticleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, slug, content, excerpt, image_url, author, meta_description, meta_keywords,
			published, created_at, updated_at, version)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,1)
		RETURNING ` + articleColumns

	now := sqliteNow()
	return scanSQLiteArticle(r.db.QueryRowContext(ctx, q,
		a.Title, a.Slug, a.Content, a.Excerpt, a.ImageURL, a.Author,
		a.MetaDescription, a.MetaKeywords, a.Published, now, now,
	))
}

func (r *sqliteArticleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return scanSQLiteArticle(r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id=?`, id))
}

func (r *sqliteArticleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return scanSQLiteArticle(r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug=?`, slug))
}

func (r *sqliteArticleRepo) List(ctx context.Context, published *bool) ([]*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles`
	args := []interface{}{}
	if published != nil {
		q += ` WHERE published = ?`
		args = append(args, *published)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Article{}
	for rows.Next() {
		a, err := scanSQLiteArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *sqliteArticleRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET title=?, slug=?, content=?, excerpt=?, image_url=?, author=?,
		    meta_description=?, meta_keywords=?, published=?,
		    updated_at=?, version=version+1
		WHERE id=?
		RETURNING ` + articleColumns

	return scanSQLiteArticle(r.db.QueryRowContext(ctx, q,
		a.Title, a.Slug, a.Content, a.Excerpt, a.ImageURL, a.Author,
		a.MetaDescription, a.MetaKeywords, a.Published, sqliteNow(), a.ID,
	))
}

func (r *sqliteArticleRepo) Autosave(ctx context.Context, id int64, req models.AutosaveRequest) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET title=?, content=?, excerpt=?, meta_description=?, meta_keywords=?, autosaved_at=?
		WHERE id=? AND published = 0
		RETURNING ` + articleColumns

	return scanSQLiteArticle(r.db.QueryRowContext(ctx, q,
		req.Title, req.Content, req.Excerpt, req.MetaDescription, req.MetaKeywords, sqliteNow(), id,
	))
}

func (r *sqliteArticleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteArticleRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE slug = ? AND id <> ?)`, slug, excludeID,
	).Scan(&ok)
	return ok, err
}

func (r *sqliteArticleRepo) Stats(ctx context.Context) (*models.ArticleStats, error) {
	var s models.ArticleStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0) FROM articles`,
	).Scan(&s.Total, &s.Published)
	if err != nil {
		return nil, err
	}
	s.Drafts = s.Total - s.Published
	return &s, nil
}

type sqliteVersionRepo struct{ db *sql.DB }

func NewSQLiteVersionRepo(db *sql.DB) VersionRepo { return &sqliteVersionRepo{db: db} }

func scanSQLiteVersion(row rowScanner) (*models.ArticleVersion, error) {
	var (
		v       models.ArticleVersion
		created string
	)
	err := row.Scan(
		&v.ID, &v.ArticleID, &v.VersionNumber, &v.Title, &v.Content, &v.Excerpt, &v.ImageURL,
		&v.Author, &v.MetaDescription, &v.MetaKeywords, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if v.CreatedAt, err = parseSQLiteTime(created); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *sqliteVersionRepo) Count(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_versions WHERE article_id=?`, articleID).Scan(&n)
	return n, err
}

func (r *sqliteVersionRepo) DeleteOldest(ctx context.Context, articleID int64) error {
	const q = `
		DELETE FROM article_versions
		WHERE id = (
			SELECT id FROM article_versions
			WHERE article_id = ?
			ORDER BY created_at ASC, version_number ASC
			LIMIT 1
		)`
	_, err := r.db.ExecContext(ctx, q, articleID)
	return err
}

func (r *sqliteVersionRepo) MaxVersion(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM article_versions WHERE article_id=?`, articleID,
	).Scan(&n)
	return n, err
}

func (r *sqliteVersionRepo) Insert(ctx context.Context, v *models.ArticleVersion) (*models.ArticleVersion, error) {
	const q = `
		INSERT INTO article_versions
			(article_id, version_number, title, content, excerpt, image_url, author, meta_description, meta_keywords, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		RETURNING ` + versionColumns

	return scanSQLiteVersion(r.db.QueryRowContext(ctx, q,
		v.ArticleID, v.VersionNumber, v.Title, v.Content, v.Excerpt, v.ImageURL, v.Author,
		v.MetaDescription, v.MetaKeywords, sqliteNow(),
	))
}

func (r *sqliteVersionRepo) GetByID(ctx context.Context, id int64) (*models.ArticleVersion, error) {
	return scanSQLiteVersion(r.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM article_versions WHERE id=?`, id))
}

func (r *sqliteVersionRepo) List(ctx context.Context, articleID int64, limit int) ([]*models.ArticleVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM article_versions
		WHERE article_id=?
		ORDER BY created_at DESC, version_number DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, articleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.ArticleVersion{}
	for rows.Next() {
		v, err := scanSQLiteVersion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *sqliteVersionRepo) DeleteByArticle(ctx context.Context, articleID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM article_versions WHERE article_id=?`, articleID)
	return err
}
