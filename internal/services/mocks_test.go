package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pawstails/internal/content"
	"pawstails/internal/models"
	"pawstails/internal/repository"
	"pawstails/internal/storage"
)

// fakeClock hands out strictly increasing timestamps so ordering by time is
// deterministic.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur.IsZero() {
		c.cur = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type mockArticleRepo struct {
	mu       sync.Mutex
	clock    *fakeClock
	nextID   int64
	articles map[int64]*models.Article
	failList error
}

func newMockArticleRepo(clock *fakeClock) *mockArticleRepo {
	return &mockArticleRepo{clock: clock, articles: map[int64]*models.Article{}}
}

func (m *mockArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.articles {
		if ex.Slug == a.Slug {
			return nil, errors.New("UNIQUE constraint failed: articles.slug")
		}
	}
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	cp.Version = 1
	cp.CreatedAt = m.clock.now()
	cp.UpdatedAt = cp.CreatedAt
	m.articles[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockArticleRepo) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.articles {
		if a.Slug == slug {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockArticleRepo) List(_ context.Context, published *bool) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := []*models.Article{}
	for _, a := range m.articles {
		if published != nil && a.Published != *published {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockArticleRepo) Update(_ context.Context, a *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.articles[a.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	cp.CreatedAt = cur.CreatedAt
	cp.AutosavedAt = cur.AutosavedAt
	cp.Version = cur.Version + 1
	cp.UpdatedAt = m.clock.now()
	m.articles[a.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockArticleRepo) Autosave(_ context.Context, id int64, req models.AutosaveRequest) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[id]
	if !ok || a.Published {
		return nil, repository.ErrNotFound
	}
	a.Title = req.Title
	a.Content = req.Content
	a.Excerpt = req.Excerpt
	a.MetaDescription = req.MetaDescription
	a.MetaKeywords = req.MetaKeywords
	t := m.clock.now()
	a.AutosavedAt = &t
	cp := *a
	return &cp, nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) SlugTaken(_ context.Context, slug string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockArticleRepo) Stats(_ context.Context) (*models.ArticleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s models.ArticleStats
	for _, a := range m.articles {
		s.Total++
		if a.Published {
			s.Published++
		}
	}
	s.Drafts = s.Total - s.Published
	return &s, nil
}

func (m *mockArticleRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.articles)
}

type mockVersionRepo struct {
	mu       sync.Mutex
	clock    *fakeClock
	nextID   int64
	versions []*models.ArticleVersion
}

func newMockVersionRepo(clock *fakeClock) *mockVersionRepo {
	return &mockVersionRepo{clock: clock}
}

func (m *mockVersionRepo) Count(_ context.Context, articleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.versions {
		if v.ArticleID == articleID {
			n++
		}
	}
	return n, nil
}

func (m *mockVersionRepo) DeleteOldest(_ context.Context, articleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, v := range m.versions {
		if v.ArticleID != articleID {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		o := m.versions[idx]
		if v.CreatedAt.Before(o.CreatedAt) || (v.CreatedAt.Equal(o.CreatedAt) && v.VersionNumber < o.VersionNumber) {
			idx = i
		}
	}
	if idx >= 0 {
		m.versions = append(m.versions[:idx], m.versions[idx+1:]...)
	}
	return nil
}

func (m *mockVersionRepo) MaxVersion(_ context.Context, articleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	top := 0
	for _, v := range m.versions {
		if v.ArticleID == articleID && v.VersionNumber > top {
			top = v.VersionNumber
		}
	}
	return top, nil
}

func (m *mockVersionRepo) Insert(_ context.Context, v *models.ArticleVersion) (*models.ArticleVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.versions {
		if ex.ArticleID == v.ArticleID && ex.VersionNumber == v.VersionNumber {
			return nil, errors.New("UNIQUE constraint failed: article_versions.article_id, article_versions.version_number")
		}
	}
	m.nextID++
	cp := *v
	cp.ID = m.nextID
	cp.CreatedAt = m.clock.now()
	m.versions = append(m.versions, &cp)
	out := cp
	return &out, nil
}

func (m *mockVersionRepo) GetByID(_ context.Context, id int64) (*models.ArticleVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.versions {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockVersionRepo) List(_ context.Context, articleID int64, limit int) ([]*models.ArticleVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.ArticleVersion{}
	for _, v := range m.versions {
		if v.ArticleID == articleID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockVersionRepo) DeleteByArticle(_ context.Context, articleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.versions[:0]
	for _, v := range m.versions {
		if v.ArticleID != articleID {
			kept = append(kept, v)
		}
	}
	m.versions = kept
	return nil
}

// flakyBlob fails writes under a path prefix.
type flakyBlob struct {
	storage.BlobStore
	failPrefix string
}

func (f *flakyBlob) WriteFile(name string, data []byte) error {
	if f.failPrefix != "" && strings.HasPrefix(name, f.failPrefix) {
		return errors.New("disk full")
	}
	return f.BlobStore.WriteFile(name, data)
}

type countingPinger struct {
	calls atomic.Int32
	err   error
	mu    sync.Mutex
	urls  []string
}

func (p *countingPinger) Ping(_ context.Context, sitemapURL string) error {
	p.calls.Add(1)
	p.mu.Lock()
	p.urls = append(p.urls, sitemapURL)
	p.mu.Unlock()
	return p.err
}

const testBaseURL = "https://pawsandtails.example"

type testEnv struct {
	svc       ArticleService
	articles  *mockArticleRepo
	versions  *mockVersionRepo
	history   *VersionService
	blob      *flakyBlob
	pages     *PageGenerator
	sitemap   *SitemapService
	notifier  *IndexNotifier
	pinger    *countingPinger
	images    *ImageService
	integrity *IntegrityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{}
	env := &testEnv{
		articles: newMockArticleRepo(clock),
		versions: newMockVersionRepo(clock),
		blob:     &flakyBlob{BlobStore: storage.NewMemory()},
		pinger:   &countingPinger{},
	}
	env.history = NewVersionService(env.versions, nil)
	env.pages = NewPageGenerator(env.blob, "templates/article.html", testBaseURL, nil)
	env.sitemap = NewSitemapService(env.articles, env.blob, testBaseURL, nil)
	env.notifier = NewIndexNotifier(env.pinger, env.sitemap.URL(), time.Second, nil)
	env.images = NewImageService(env.blob, 800, 5<<20)
	env.integrity = NewIntegrityService(env.articles, env.blob, env.pages, env.sitemap)
	env.svc = NewArticleService(ArticleDeps{
		Repo:      env.articles,
		History:   env.history,
		Pages:     env.pages,
		Sitemap:   env.sitemap,
		Notifier:  env.notifier,
		Images:    env.images,
		Sanitizer: content.NewSanitizer(nil),
	})
	t.Cleanup(env.notifier.Wait)
	return env
}

func (e *testEnv) pageExists(t *testing.T, slug string) bool {
	t.Helper()
	ok, err := e.blob.Exists(PagePath(slug))
	require.NoError(t, err)
	return ok
}

func (e *testEnv) sitemapXML(t *testing.T) string {
	t.Helper()
	data, err := e.blob.ReadFile(SitemapPath)
	if errors.Is(err, storage.ErrNotFound) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) pings() int {
	e.notifier.Wait()
	return int(e.pinger.calls.Load())
}

func boolPtr(b bool) *bool { return &b }
