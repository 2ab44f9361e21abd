package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/models"
	"pawstails/internal/repository"
	"pawstails/internal/storage"
)

// IntegrityService cross-checks published articles against the static pages
// in the blob store.
type IntegrityService struct {
	repo    repository.ArticleRepo
	blob    storage.BlobStore
	pages   *PageGenerator
	sitemap *SitemapService
}

func NewIntegrityService(repo repository.ArticleRepo, blob storage.BlobStore, pages *PageGenerator, sitemap *SitemapService) *IntegrityService {
	return &IntegrityService{repo: repo, blob: blob, pages: pages, sitemap: sitemap}
}

// Check reports published articles without a page (missing_html) and pages
// without a published article (orphaned_html).
func (s *IntegrityService) Check(ctx context.Context) ([]models.IntegrityIssue, error) {
	published := true
	articles, err := s.repo.List(ctx, &published)
	if err != nil {
		return nil, persistErr("list published articles", err)
	}
	names, err := s.blob.ListDir(ArticlesDir)
	if err != nil {
		return nil, persistErr("list pages", err)
	}

	onDisk := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, ".html") {
			onDisk[strings.TrimSuffix(n, ".html")] = true
		}
	}

	issues := []models.IntegrityIssue{}
	live := make(map[string]bool, len(articles))
	for _, a := range articles {
		live[a.Slug] = true
		if !onDisk[a.Slug] {
			issues = append(issues, models.IntegrityIssue{
				Type:      models.IssueMissingHTML,
				ArticleID: a.ID,
				Slug:      a.Slug,
				Path:      PagePath(a.Slug),
			})
		}
	}
	for _, n := range names {
		slug := strings.TrimSuffix(n, ".html")
		if slug == n || live[slug] {
			continue
		}
		issues = append(issues, models.IntegrityIssue{
			Type: models.IssueOrphanedHTML,
			Slug: slug,
			Path: PagePath(slug),
		})
	}

	logger.WithCtx(ctx).Debug("Integrity check finished",
		zap.Int("published", len(articles)),
		zap.Int("pages", len(names)),
		zap.Int("issues", len(issues)),
	)
	return issues, nil
}

// Repair regenerates the static page of a published article.
func (s *IntegrityService) Repair(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, persistErr("get article", err)
	}
	if !a.Published {
		return nil, ErrNotPublished
	}
	if err := s.pages.Generate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.sitemap.Regenerate(ctx); err != nil {
		logger.WithCtx(ctx).Warn("Sitemap not regenerated after repair", zap.Error(err))
	}
	logger.WithCtx(ctx).Info("Static page repaired", zap.Int64("article_id", id), zap.String("slug", a.Slug))
	return a, nil
}

// Sweep runs Check and, when autoRepair is set, regenerates every missing
// page. The sitemap is rewritten either way.
func (s *IntegrityService) Sweep(ctx context.Context, autoRepair bool) (*models.IntegrityReport, error) {
	log := logger.WithCtx(ctx)
	issues, err := s.Check(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.IntegrityReport{Issues: issues}
	for _, is := range issues {
		log.Warn("Integrity issue", zap.String("type", is.Type), zap.String("path", is.Path))
		if !autoRepair || is.Type != models.IssueMissingHTML {
			continue
		}
		if _, err := s.Repair(ctx, is.ArticleID); err != nil {
			log.Error("Automatic repair failed", zap.Int64("article_id", is.ArticleID), zap.Error(err))
			continue
		}
		report.Repaired++
	}

	if err := s.sitemap.Regenerate(ctx); err != nil {
		log.Warn("Sitemap not regenerated during sweep", zap.Error(err))
	}
	return report, nil
}
