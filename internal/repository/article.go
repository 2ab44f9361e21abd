package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawstails/internal/models"
)

// ErrNotFound is returned when a lookup or conditional update matches no row.
var ErrNotFound = errors.New("record not found")

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	// List returns articles newest first; a nil filter returns all of them.
	List(ctx context.Context, published *bool) ([]*models.Article, error)
	// Update overwrites the editable fields and increments the version counter.
	Update(ctx context.Context, a *models.Article) (*models.Article, error)
	// Autosave updates content fields of a draft only. A missing or published
	// article yields ErrNotFound.
	Autosave(ctx context.Context, id int64, req models.AutosaveRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	Stats(ctx context.Context) (*models.ArticleStats, error)
}

const articleColumns = `id, title, slug, content, excerpt, image_url, author, meta_description, meta_keywords,
	published, created_at, updated_at, autosaved_at, version`

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.ImageURL, &a.Author,
		&a.MetaDescription, &a.MetaKeywords, &a.Published,
		&a.CreatedAt, &a.UpdatedAt, &a.AutosavedAt, &a.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, slug, content, excerpt, image_url, author, meta_description, meta_keywords, published)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING ` + articleColumns

	return scanArticle(r.db.QueryRow(ctx, q,
		a.Title, a.Slug, a.Content, a.Excerpt, a.ImageURL, a.Author,
		a.MetaDescription, a.MetaKeywords, a.Published,
	))
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return scanArticle(r.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id=$1`, id))
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return scanArticle(r.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug=$1`, slug))
}

func (r *articleRepo) List(ctx context.Context, published *bool) ([]*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles`
	args := []interface{}{}
	if published != nil {
		q += ` WHERE published = $1`
		args = append(args, *published)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET title=$1,
		    slug=$2,
		    content=$3,
		    excerpt=$4,
		    image_url=$5,
		    author=$6,
		    meta_description=$7,
		    meta_keywords=$8,
		    published=$9,
		    updated_at=NOW(),
		    version=version+1
		WHERE id=$10
		RETURNING ` + articleColumns

	return scanArticle(r.db.QueryRow(ctx, q,
		a.Title, a.Slug, a.Content, a.Excerpt, a.ImageURL, a.Author,
		a.MetaDescription, a.MetaKeywords, a.Published, a.ID,
	))
}

func (r *articleRepo) Autosave(ctx context.Context, id int64, req models.AutosaveRequest) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET title=$1,
		    content=$2,
		    excerpt=$3,
		    meta_description=$4,
		    meta_keywords=$5,
		    autosaved_at=NOW()
		WHERE id=$6 AND published = FALSE
		RETURNING ` + articleColumns

	return scanArticle(r.db.QueryRow(ctx, q,
		req.Title, req.Content, req.Excerpt, req.MetaDescription, req.MetaKeywords, id,
	))
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *articleRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, slug, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *articleRepo) Stats(ctx context.Context) (*models.ArticleStats, error) {
	const q = `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0)
		FROM articles`
	var s models.ArticleStats
	if err := r.db.QueryRow(ctx, q).Scan(&s.Total, &s.Published); err != nil {
		return nil, err
	}
	s.Drafts = s.Total - s.Published
	return &s, nil
}
