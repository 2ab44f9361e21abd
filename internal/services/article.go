package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pawstails/internal/content"
	"pawstails/internal/logger"
	"pawstails/internal/metrics"
	"pawstails/internal/models"
	"pawstails/internal/repository"
)

type ArticleService interface {
	Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error)
	SetPublish(ctx context.Context, id int64, publish bool) (*models.Article, error)
	Autosave(ctx context.Context, id int64, req models.AutosaveRequest) (*models.Article, error)
	Restore(ctx context.Context, id, versionID int64) (*models.Article, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, published *bool) ([]*models.Article, error)
	Versions(ctx context.Context, id int64) ([]*models.ArticleVersion, error)
	Preview(req models.PreviewRequest) models.PreviewResponse
	Stats(ctx context.Context) (*models.ArticleStats, error)
}

// ArticleDeps are the collaborators of the article service.
type ArticleDeps struct {
	Repo          repository.ArticleRepo
	History       *VersionService
	Pages         *PageGenerator
	Sitemap       *SitemapService
	Notifier      *IndexNotifier
	Images        *ImageService
	Sanitizer     *content.Sanitizer
	Metrics       *metrics.Recorder
	DefaultAuthor string
}

type articleService struct {
	ArticleDeps
}

func NewArticleService(deps ArticleDeps) ArticleService {
	if deps.DefaultAuthor == "" {
		deps.DefaultAuthor = SiteName
	}
	return &articleService{ArticleDeps: deps}
}

func (s *articleService) validate(title, body string) error {
	res := content.Validate(title, body)
	if !res.Valid {
		return &ValidationError{Messages: res.Errors}
	}
	return nil
}

func (s *articleService) getArticle(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, persistErr("get article", err)
	}
	return a, nil
}

// uniqueSlug derives the slug from title and appends -2, -3, ... while it
// collides with another article.
func (s *articleService) uniqueSlug(ctx context.Context, title string, selfID int64) (string, error) {
	base := content.Slugify(title)
	slug := base
	for i := 2; ; i++ {
		taken, err := s.Repo.SlugTaken(ctx, slug, selfID)
		if err != nil {
			return "", persistErr("check slug", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// applyRequest copies the validated request onto a, sanitizing the body.
func (s *articleService) applyRequest(a *models.Article, req models.ArticleRequest) {
	a.Title = strings.TrimSpace(req.Title)
	a.Content = s.Sanitizer.Sanitize(req.Content)
	a.Excerpt = strings.TrimSpace(req.Excerpt)
	if a.Excerpt == "" {
		a.Excerpt = content.CreateExcerpt(a.Content, content.DefaultExcerptLength)
	}
	if author := strings.TrimSpace(req.Author); author != "" {
		a.Author = author
	}
	if a.Author == "" {
		a.Author = s.DefaultAuthor
	}
	a.MetaDescription = strings.TrimSpace(req.MetaDescription)
	a.MetaKeywords = strings.TrimSpace(req.MetaKeywords)
	if req.ImageURL != "" {
		a.ImageURL = req.ImageURL
	}
}

func (s *articleService) Create(ctx context.Context, req models.ArticleRequest) (a *models.Article, err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("create", err) }()

	published := true
	if req.Published != nil {
		published = *req.Published
	}
	log.Info("Creating article",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Bool("published", published),
	)

	if err := s.validate(req.Title, req.Content); err != nil {
		log.Warn("Article validation failed", zap.Error(err))
		return nil, err
	}

	draft := &models.Article{Published: published}
	s.applyRequest(draft, req)
	if draft.Slug, err = s.uniqueSlug(ctx, draft.Title, 0); err != nil {
		return nil, err
	}

	created, err := s.Repo.Create(ctx, draft)
	if err != nil {
		log.Error("Article insert failed (repo)", zap.Error(err))
		return nil, persistErr("create article", err)
	}

	if created.Published {
		if err := s.Pages.Generate(ctx, created); err != nil {
			log.Error("Static page generation failed, rolling back", zap.Int64("id", created.ID), zap.Error(err))
			if delErr := s.Repo.Delete(ctx, created.ID); delErr != nil {
				log.Error("Rollback of article failed", zap.Int64("id", created.ID), zap.Error(delErr))
			}
			return nil, err
		}
		if _, err := s.History.Snapshot(ctx, created); err != nil {
			log.Warn("Initial version snapshot failed", zap.Int64("id", created.ID), zap.Error(err))
		}
		s.refreshSitemap(ctx)
		s.Notifier.Notify(ctx, created.Slug)
	}

	log.Info("Article created",
		zap.Int64("id", created.ID),
		zap.String("slug", created.Slug),
		zap.Bool("published", created.Published),
	)
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.ArticleRequest) (a *models.Article, err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("update", err) }()
	log.Info("Updating article", zap.Int64("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	if err := s.validate(req.Title, req.Content); err != nil {
		log.Warn("Article validation failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	cur, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *cur
	s.applyRequest(&next, req)
	if req.Published != nil {
		next.Published = *req.Published
	}
	if next.Slug, err = s.uniqueSlug(ctx, next.Title, id); err != nil {
		return nil, err
	}

	return s.transition(ctx, cur, &next)
}

// transition persists next over cur and brings the static page, sitemap,
// version history and indexer in line with the published-state change.
func (s *articleService) transition(ctx context.Context, cur, next *models.Article) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	// only published states are versioned
	if cur.Published {
		if _, err := s.History.Snapshot(ctx, cur); err != nil {
			log.Error("Version snapshot failed, update aborted", zap.Int64("id", cur.ID), zap.Error(err))
			return nil, err
		}
	}

	updated, err := s.Repo.Update(ctx, next)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		log.Error("Article update failed (repo)", zap.Int64("id", cur.ID), zap.Error(err))
		return nil, persistErr("update article", err)
	}

	if cur.ImageURL != "" && cur.ImageURL != updated.ImageURL {
		s.deleteImage(ctx, cur.ImageURL)
	}

	switch {
	case cur.Published && updated.Published:
		if cur.Slug != updated.Slug {
			if err := s.Pages.Delete(ctx, cur.Slug); err != nil {
				log.Warn("Old static page not removed", zap.String("slug", cur.Slug), zap.Error(err))
			}
		}
		if err := s.Pages.Generate(ctx, updated); err != nil {
			return nil, err
		}
		s.refreshSitemap(ctx)

	case !cur.Published && updated.Published:
		if err := s.Pages.Generate(ctx, updated); err != nil {
			return nil, err
		}
		s.refreshSitemap(ctx)
		s.Notifier.Notify(ctx, updated.Slug)

	case cur.Published && !updated.Published:
		if err := s.Pages.Delete(ctx, cur.Slug); err != nil {
			return nil, err
		}
		s.refreshSitemap(ctx)
	}

	log.Info("Article updated",
		zap.Int64("id", updated.ID),
		zap.String("slug", updated.Slug),
		zap.Bool("was_published", cur.Published),
		zap.Bool("published", updated.Published),
		zap.Int("version", updated.Version),
	)
	return updated, nil
}

// SetPublish toggles the published flag keeping the current content.
func (s *articleService) SetPublish(ctx context.Context, id int64, publish bool) (a *models.Article, err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("publish", err) }()
	log.Info("Changing publish state", zap.Int64("id", id), zap.Bool("publish", publish))

	cur, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if publish {
		if err := s.validate(cur.Title, cur.Content); err != nil {
			return nil, err
		}
	}
	next := *cur
	next.Published = publish
	return s.transition(ctx, cur, &next)
}

// Autosave stores work in progress on a draft. Drafts are not validated so
// incomplete content can be kept.
func (s *articleService) Autosave(ctx context.Context, id int64, req models.AutosaveRequest) (a *models.Article, err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("autosave", err) }()

	req.Title = strings.TrimSpace(req.Title)
	req.Content = s.Sanitizer.Sanitize(req.Content)
	req.Excerpt = strings.TrimSpace(req.Excerpt)
	if req.Excerpt == "" {
		req.Excerpt = content.CreateExcerpt(req.Content, content.DefaultExcerptLength)
	}

	saved, err := s.Repo.Autosave(ctx, id, req)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Autosave rejected: missing or published", zap.Int64("id", id))
		return nil, ErrNotFoundOrPublished
	}
	if err != nil {
		log.Error("Autosave failed (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, persistErr("autosave article", err)
	}

	log.Debug("Draft autosaved", zap.Int64("id", id))
	return saved, nil
}

func (s *articleService) Restore(ctx context.Context, id, versionID int64) (a *models.Article, err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("restore", err) }()
	log.Info("Restoring article version", zap.Int64("id", id), zap.Int64("version_id", versionID))

	cur, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	ver, err := s.History.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if ver.ArticleID != id {
		return nil, ErrVersionNotFound
	}

	if _, err := s.History.Snapshot(ctx, cur); err != nil {
		log.Error("Pre-restore snapshot failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	next := *cur
	next.Title = ver.Title
	next.Content = ver.Content
	next.Excerpt = ver.Excerpt
	next.Author = ver.Author
	next.MetaDescription = ver.MetaDescription
	next.MetaKeywords = ver.MetaKeywords
	if next.Slug, err = s.uniqueSlug(ctx, next.Title, id); err != nil {
		return nil, err
	}

	updated, err := s.Repo.Update(ctx, &next)
	if err != nil {
		log.Error("Restore update failed (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, persistErr("restore article", err)
	}

	if cur.Published {
		if cur.Slug != updated.Slug {
			if err := s.Pages.Delete(ctx, cur.Slug); err != nil {
				log.Warn("Old static page not removed", zap.String("slug", cur.Slug), zap.Error(err))
			}
		}
		if err := s.Pages.Generate(ctx, updated); err != nil {
			return nil, err
		}
		s.refreshSitemap(ctx)
	}

	log.Info("Article restored",
		zap.Int64("id", id),
		zap.Int("from_version", ver.VersionNumber),
		zap.Int("version", updated.Version),
	)
	return updated, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) (err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.Metrics.ArticleOp("delete", err) }()
	log.Info("Deleting article", zap.Int64("id", id))

	cur, err := s.getArticle(ctx, id)
	if err != nil {
		return err
	}

	if cur.ImageURL != "" {
		s.deleteImage(ctx, cur.ImageURL)
	}
	if err := s.Pages.Delete(ctx, cur.Slug); err != nil {
		log.Warn("Static page not removed", zap.String("slug", cur.Slug), zap.Error(err))
	}
	if err := s.History.DeleteAll(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArticleNotFound
		}
		log.Error("Article delete failed (repo)", zap.Int64("id", id), zap.Error(err))
		return persistErr("delete article", err)
	}
	s.refreshSitemap(ctx)

	log.Info("Article deleted", zap.Int64("id", id), zap.String("slug", cur.Slug))
	return nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	logger.WithCtx(ctx).Debug("Fetching article by id", zap.Int64("id", id))
	return s.getArticle(ctx, id)
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	a, err := s.Repo.GetBySlug(ctx, content.SanitizeSlug(slug))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, persistErr("get article", err)
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context, published *bool) ([]*models.Article, error) {
	list, err := s.Repo.List(ctx, published)
	if err != nil {
		logger.WithCtx(ctx).Error("Listing articles failed (repo)", zap.Error(err))
		return nil, persistErr("list articles", err)
	}
	return list, nil
}

func (s *articleService) Versions(ctx context.Context, id int64) ([]*models.ArticleVersion, error) {
	if _, err := s.getArticle(ctx, id); err != nil {
		return nil, err
	}
	return s.History.List(ctx, id, MaxVersions)
}

// Preview validates and sanitizes without persisting anything.
func (s *articleService) Preview(req models.PreviewRequest) models.PreviewResponse {
	res := content.Validate(req.Title, req.Content)
	clean := s.Sanitizer.Sanitize(req.Content)
	logger.Log.Debug("Article preview",
		zap.Int("raw_len", len(req.Content)),
		zap.Int("clean_len", len(clean)),
	)
	return models.PreviewResponse{
		Valid:   res.Valid,
		Errors:  res.Errors,
		Content: clean,
		Excerpt: content.CreateExcerpt(clean, content.DefaultExcerptLength),
		Slug:    content.Slugify(req.Title),
	}
}

func (s *articleService) Stats(ctx context.Context) (*models.ArticleStats, error) {
	st, err := s.Repo.Stats(ctx)
	if err != nil {
		return nil, persistErr("article stats", err)
	}
	return st, nil
}

// refreshSitemap is best effort: failures are logged and counted only.
func (s *articleService) refreshSitemap(ctx context.Context) {
	if err := s.Sitemap.Regenerate(ctx); err != nil {
		logger.WithCtx(ctx).Warn("Sitemap not regenerated", zap.Error(err))
	}
}

func (s *articleService) deleteImage(ctx context.Context, imageURL string) {
	if err := s.Images.Delete(ctx, imageURL); err != nil {
		logger.WithCtx(ctx).Warn("Image blob not removed", zap.String("image_url", imageURL), zap.Error(err))
	}
}
