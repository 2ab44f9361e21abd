package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pawstails/internal/content"
	"pawstails/internal/logger"
	"pawstails/internal/metrics"
	"pawstails/internal/models"
	"pawstails/internal/render"
	"pawstails/internal/storage"
)

const (
	ArticlesDir = "articles"
	SiteName    = "Paws & Tails"
)

// PagePath is the blob path of the static page for slug.
func PagePath(slug string) string {
	return ArticlesDir + "/" + slug + ".html"
}

// PageGenerator materializes static article pages into the blob store.
type PageGenerator struct {
	blob         storage.BlobStore
	renderer     *render.Renderer
	templatePath string
	baseURL      string
	rec          *metrics.Recorder
}

func NewPageGenerator(blob storage.BlobStore, templatePath, baseURL string, rec *metrics.Recorder) *PageGenerator {
	return &PageGenerator{
		blob:         blob,
		renderer:     render.NewRenderer(blob),
		templatePath: templatePath,
		baseURL:      baseURL,
		rec:          rec,
	}
}

// WithTemplateStore reads templates from store instead of the page store,
// keeping them out of the public directory.
func (g *PageGenerator) WithTemplateStore(store storage.BlobStore) *PageGenerator {
	g.renderer = render.NewRenderer(store)
	return g
}

// Context builds the placeholder values for a. Text fields are escaped; the
// body is already sanitized HTML and is inserted as is.
func (g *PageGenerator) Context(a *models.Article) render.Context {
	featured := ""
	if a.ImageURL != "" {
		featured = fmt.Sprintf(`<img src="%s" alt="%s" class="featured-image">`,
			content.EscapeHTML(a.ImageURL), content.EscapeHTML(a.Title))
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return render.Context{
		"title":            content.EscapeHTML(a.Title),
		"slug":             a.Slug,
		"url":              g.baseURL + "/" + PagePath(a.Slug),
		"content":          a.Content,
		"excerpt":          content.EscapeHTML(a.Excerpt),
		"author":           content.EscapeHTML(a.Author),
		"meta_description": content.EscapeHTML(a.MetaDescription),
		"meta_keywords":    content.EscapeHTML(a.MetaKeywords),
		"image_url":        content.EscapeHTML(a.ImageURL),
		"featured_image":   featured,
		"created_at":       created.Format("January 2, 2006"),
		"updated_at":       a.UpdatedAt.Format("January 2, 2006"),
		"site_name":        content.EscapeHTML(SiteName),
		"year":             strconv.Itoa(time.Now().Year()),
	}
}

// Render produces the page HTML, falling back to the built-in template when
// the configured one cannot be read.
func (g *PageGenerator) Render(ctx context.Context, a *models.Article) string {
	data := g.Context(a)
	html, err := g.renderer.RenderFromPath(g.templatePath, data)
	if err == nil {
		g.rec.PageRendered("template")
		return html
	}

	var readErr *render.TemplateReadError
	if errors.As(err, &readErr) {
		logger.WithCtx(ctx).Warn("Article template unavailable, using fallback",
			zap.String("path", readErr.Path), zap.Error(readErr.Err))
	}
	g.rec.PageRendered("fallback")
	return render.Render(render.FallbackTemplate(), data)
}

// Generate writes the static page for a.
func (g *PageGenerator) Generate(ctx context.Context, a *models.Article) error {
	path := PagePath(a.Slug)
	if err := g.blob.WriteFile(path, []byte(g.Render(ctx, a))); err != nil {
		return persistErr("write page", err)
	}
	logger.WithCtx(ctx).Info("Static page generated", zap.Int64("article_id", a.ID), zap.String("path", path))
	return nil
}

func (g *PageGenerator) Delete(ctx context.Context, slug string) error {
	if err := g.blob.DeleteFile(PagePath(slug)); err != nil {
		return persistErr("delete page", err)
	}
	logger.WithCtx(ctx).Info("Static page deleted", zap.String("slug", slug))
	return nil
}

func (g *PageGenerator) Exists(slug string) (bool, error) {
	return g.blob.Exists(PagePath(slug))
}
