package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawstails/internal/models"
)

type VersionRepo interface {
	Count(ctx context.Context, articleID int64) (int, error)
	// DeleteOldest removes the earliest snapshot by creation time, breaking
	// ties by version number.
	DeleteOldest(ctx context.Context, articleID int64) error
	MaxVersion(ctx context.Context, articleID int64) (int, error)
	Insert(ctx context.Context, v *models.ArticleVersion) (*models.ArticleVersion, error)
	GetByID(ctx context.Context, id int64) (*models.ArticleVersion, error)
	// List returns at most limit snapshots, newest first.
	List(ctx context.Context, articleID int64, limit int) ([]*models.ArticleVersion, error)
	DeleteByArticle(ctx context.Context, articleID int64) error
}

const versionColumns = `id, article_id, version_number, title, content, excerpt, image_url, author,
	meta_description, meta_keywords, created_at`

type versionRepo struct{ db *pgxpool.Pool }

func NewVersionRepo(db *pgxpool.Pool) VersionRepo { return &versionRepo{db: db} }

func scanVersion(row pgx.Row) (*models.ArticleVersion, error) {
	var v models.ArticleVersion
	err := row.Scan(
		&v.ID, &v.ArticleID, &v.VersionNumber, &v.Title, &v.Content, &v.Excerpt, &v.ImageURL,
		&v.Author, &v.MetaDescription, &v.MetaKeywords, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *versionRepo) Count(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM article_versions WHERE article_id=$1`, articleID).Scan(&n)
	return n, err
}

func (r *versionRepo) DeleteOldest(ctx context.Context, articleID int64) error {
	const q = `
		DELETE FROM article_versions
		WHERE id = (
			SELECT id FROM article_versions
			WHERE article_id = $1
			ORDER BY created_at ASC, version_number ASC
			LIMIT 1
		)`
	_, err := r.db.Exec(ctx, q, articleID)
	return err
}

func (r *versionRepo) MaxVersion(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM article_versions WHERE article_id=$1`, articleID,
	).Scan(&n)
	return n, err
}

func (r *versionRepo) Insert(ctx context.Context, v *models.ArticleVersion) (*models.ArticleVersion, error) {
	const q = `
		INSERT INTO article_versions
			(article_id, version_number, title, content, excerpt, image_url, author, meta_description, meta_keywords)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING ` + versionColumns

	return scanVersion(r.db.QueryRow(ctx, q,
		v.ArticleID, v.VersionNumber, v.Title, v.Content, v.Excerpt, v.ImageURL, v.Author,
		v.MetaDescription, v.MetaKeywords,
	))
}

func (r *versionRepo) GetByID(ctx context.Context, id int64) (*models.ArticleVersion, error) {
	return scanVersion(r.db.QueryRow(ctx, `SELECT `+versionColumns+` FROM article_versions WHERE id=$1`, id))
}

func (r *versionRepo) List(ctx context.Context, articleID int64, limit int) ([]*models.ArticleVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM article_versions
		WHERE article_id=$1
		ORDER BY created_at DESC, version_number DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, q, articleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.ArticleVersion{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *versionRepo) DeleteByArticle(ctx context.Context, articleID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM article_versions WHERE article_id=$1`, articleID)
	return err
}
