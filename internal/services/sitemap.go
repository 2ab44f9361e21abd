package services

import (
	"context"
	"encoding/xml"
	"time"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/metrics"
	"pawstails/internal/repository"
	"pawstails/internal/storage"
)

const SitemapPath = "sitemap.xml"

// StaticPages are the top-level pages listed in every sitemap.
var StaticPages = []string{"/", "/index.html", "/about.html", "/services.html", "/buy-sell.html", "/contact.html"}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

type SitemapService struct {
	repo    repository.ArticleRepo
	blob    storage.BlobStore
	baseURL string
	rec     *metrics.Recorder
	now     func() time.Time
}

func NewSitemapService(repo repository.ArticleRepo, blob storage.BlobStore, baseURL string, rec *metrics.Recorder) *SitemapService {
	return &SitemapService{repo: repo, blob: blob, baseURL: baseURL, rec: rec, now: time.Now}
}

// URL is the public address of the sitemap document.
func (s *SitemapService) URL() string {
	return s.baseURL + "/" + SitemapPath
}

// ArticleURL is the public address of the static page for slug.
func (s *SitemapService) ArticleURL(slug string) string {
	return s.baseURL + "/" + PagePath(slug)
}

// Build renders the sitemap for the currently published articles.
func (s *SitemapService) Build(ctx context.Context) ([]byte, error) {
	published := true
	articles, err := s.repo.List(ctx, &published)
	if err != nil {
		return nil, persistErr("list published articles", err)
	}

	today := s.now().UTC().Format(time.DateOnly)
	urls := make([]sitemapURL, 0, len(StaticPages)+len(articles))
	for _, p := range StaticPages {
		urls = append(urls, sitemapURL{Loc: s.baseURL + p, LastMod: today, Priority: "1.0"})
	}
	for _, a := range articles {
		lastmod := today
		if !a.UpdatedAt.IsZero() {
			lastmod = a.UpdatedAt.UTC().Format(time.DateOnly)
		}
		urls = append(urls, sitemapURL{Loc: s.ArticleURL(a.Slug), LastMod: lastmod, Priority: "0.8"})
	}

	out, err := xml.MarshalIndent(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// Regenerate rewrites sitemap.xml in the blob store.
func (s *SitemapService) Regenerate(ctx context.Context) (err error) {
	log := logger.WithCtx(ctx)
	defer func() { s.rec.SitemapRegenerated(err) }()

	doc, err := s.Build(ctx)
	if err != nil {
		log.Error("Sitemap build failed", zap.Error(err))
		return err
	}
	if err = s.blob.WriteFile(SitemapPath, doc); err != nil {
		log.Error("Sitemap write failed", zap.Error(err))
		return persistErr("write sitemap", err)
	}
	log.Debug("Sitemap regenerated", zap.Int("bytes", len(doc)))
	return nil
}
