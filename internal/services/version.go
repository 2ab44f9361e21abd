package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/metrics"
	"pawstails/internal/models"
	"pawstails/internal/repository"
)

// MaxVersions is the number of snapshots retained per article.
const MaxVersions = 5

type VersionService struct {
	repo repository.VersionRepo
	rec  *metrics.Recorder
}

func NewVersionService(repo repository.VersionRepo, rec *metrics.Recorder) *VersionService {
	return &VersionService{repo: repo, rec: rec}
}

// Snapshot stores the content fields of a as a new version. When the article
// already has MaxVersions snapshots the oldest one is evicted first, so the
// retained count never exceeds the bound.
func (s *VersionService) Snapshot(ctx context.Context, a *models.Article) (*models.ArticleVersion, error) {
	log := logger.WithCtx(ctx)

	n, err := s.repo.Count(ctx, a.ID)
	if err != nil {
		return nil, persistErr("count versions", err)
	}
	if n >= MaxVersions {
		if err := s.repo.DeleteOldest(ctx, a.ID); err != nil {
			return nil, persistErr("evict version", err)
		}
		s.rec.VersionEvicted()
		log.Debug("Oldest version evicted", zap.Int64("article_id", a.ID), zap.Int("count", n))
	}

	top, err := s.repo.MaxVersion(ctx, a.ID)
	if err != nil {
		return nil, persistErr("max version", err)
	}

	v, err := s.repo.Insert(ctx, &models.ArticleVersion{
		ArticleID:       a.ID,
		VersionNumber:   top + 1,
		Title:           a.Title,
		Content:         a.Content,
		Excerpt:         a.Excerpt,
		ImageURL:        a.ImageURL,
		Author:          a.Author,
		MetaDescription: a.MetaDescription,
		MetaKeywords:    a.MetaKeywords,
	})
	if err != nil {
		return nil, persistErr("insert version", err)
	}

	log.Info("Version snapshot stored",
		zap.Int64("article_id", a.ID),
		zap.Int("version_number", v.VersionNumber),
	)
	return v, nil
}

func (s *VersionService) Get(ctx context.Context, id int64) (*models.ArticleVersion, error) {
	v, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, persistErr("get version", err)
	}
	return v, nil
}

// List returns up to limit snapshots newest first. A non-positive limit means
// MaxVersions.
func (s *VersionService) List(ctx context.Context, articleID int64, limit int) ([]*models.ArticleVersion, error) {
	if limit <= 0 {
		limit = MaxVersions
	}
	list, err := s.repo.List(ctx, articleID, limit)
	if err != nil {
		return nil, persistErr("list versions", err)
	}
	return list, nil
}

func (s *VersionService) DeleteAll(ctx context.Context, articleID int64) error {
	if err := s.repo.DeleteByArticle(ctx, articleID); err != nil {
		return persistErr("delete versions", err)
	}
	return nil
}
