package routes

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstails/internal/content"
	"pawstails/internal/db"
	"pawstails/internal/handlers"
	"pawstails/internal/models"
	"pawstails/internal/repository"
	"pawstails/internal/services"
	"pawstails/internal/storage"
)

const baseURL = "https://pawsandtails.example"

type apiEnv struct {
	router *mux.Router
	blob   *storage.Blob
	token  string
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	conn, err := db.NewSQLiteConnection(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	articles := repository.NewSQLiteArticleRepo(conn)
	blob := storage.NewMemory()

	pages := services.NewPageGenerator(blob, "templates/article.html", baseURL, nil)
	sitemap := services.NewSitemapService(articles, blob, baseURL, nil)
	images := services.NewImageService(blob, 600, 1<<20)
	integrity := services.NewIntegrityService(articles, blob, pages, sitemap)
	svc := services.NewArticleService(services.ArticleDeps{
		Repo:      articles,
		History:   services.NewVersionService(repository.NewSQLiteVersionRepo(conn), nil),
		Pages:     pages,
		Sitemap:   sitemap,
		Images:    images,
		Sanitizer: content.NewSanitizer(nil),
	})

	auth, err := services.NewAuthService("admin", "woof", "api-secret", time.Hour)
	require.NoError(t, err)

	router := mux.NewRouter()
	InitRoutes(router, Handlers{
		Auth:     handlers.NewAuthHandler(auth),
		Articles: handlers.NewArticleHandler(svc, images, 1<<20),
		Images:   handlers.NewImageHandler(images, 1<<20),
		Admin:    handlers.NewAdminHandler(svc, integrity, sitemap),
		Logs:     handlers.NewAdminLogsHandler(t.TempDir()),
		Health:   handlers.NewHealthHandler(conn.PingContext),
	}, auth)

	env := &apiEnv{router: router, blob: blob}
	env.token = env.login(t, "admin", "woof")
	return env
}

func (e *apiEnv) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Errors []string        `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(env.Data, into))
	}
	return env
}

func (e *apiEnv) login(t *testing.T, user, pass string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": user, "password": pass}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &out)
	return out.AccessToken
}

func (e *apiEnv) create(t *testing.T, title, body string, published bool) models.Article {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/articles", map[string]any{
		"title": title, "content": body, "published": published,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a models.Article
	decode(t, rec, &a)
	return a
}

func TestAuthEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "meow"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec, nil).Error)

	rec = env.do(t, http.MethodGet, "/api/auth/verify", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var v struct {
		Valid    bool   `json:"valid"`
		Username string `json:"username"`
	}
	decode(t, rec, &v)
	assert.True(t, v.Valid)
	assert.Equal(t, "admin", v.Username)

	rec = env.do(t, http.MethodGet, "/api/auth/verify", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newAPIEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/articles"},
		{http.MethodPut, "/api/articles/1"},
		{http.MethodDelete, "/api/articles/1"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodPost, "/api/images"},
	} {
		rec := env.do(t, tc.method, tc.path, map[string]string{}, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

func TestArticleLifecycleOverHTTP(t *testing.T) {
	env := newAPIEnv(t)

	a := env.create(t, "Senior Dog Care", "<p>Softer food and shorter walks.</p>", true)
	assert.Equal(t, "senior-dog-care", a.Slug)
	ok, err := env.blob.Exists("articles/senior-dog-care.html")
	require.NoError(t, err)
	assert.True(t, ok)

	rec := env.do(t, http.MethodGet, "/api/articles/slug/senior-dog-care", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/articles/"+itoa(a.ID), map[string]any{
		"title": "Senior Dog Care", "content": "<p>Softer food, shorter walks, more naps.</p>", "published": true,
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var up models.Article
	decode(t, rec, &up)
	assert.Equal(t, a.Version+1, up.Version)

	rec = env.do(t, http.MethodGet, "/api/articles/"+itoa(a.ID)+"/versions", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var versions []models.ArticleVersion
	decode(t, rec, &versions)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)

	rec = env.do(t, http.MethodPost, "/api/articles/"+itoa(a.ID)+"/versions/"+itoa(versions[1].ID)+"/restore", nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var restored models.Article
	decode(t, rec, &restored)
	assert.Equal(t, "<p>Softer food and shorter walks.</p>", restored.Content)

	rec = env.do(t, http.MethodPatch, "/api/articles/"+itoa(a.ID)+"/publish", map[string]bool{"published": false}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	ok, err = env.blob.Exists("articles/senior-dog-care.html")
	require.NoError(t, err)
	assert.False(t, ok)

	rec = env.do(t, http.MethodPost, "/api/articles/"+itoa(a.ID)+"/autosave", map[string]string{
		"title": "Senior Dog Care", "content": "<p>draft <script>x</script>notes</p>",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved models.Article
	decode(t, rec, &saved)
	assert.Equal(t, "<p>draft notes</p>", saved.Content)
	assert.NotNil(t, saved.AutosavedAt)

	rec = env.do(t, http.MethodDelete, "/api/articles/"+itoa(a.ID), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/articles/"+itoa(a.ID), nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrorsAreListed(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/articles", map[string]any{"title": "", "content": "<div>short"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode(t, rec, nil)
	assert.Equal(t, "Validation failed", out.Error)
	assert.Equal(t, []string{"Title is required", "Unclosed tags: div"}, out.Errors)

	rec = env.do(t, http.MethodPost, "/api/articles", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutosavePublishedIsNotFound(t *testing.T) {
	env := newAPIEnv(t)
	a := env.create(t, "Kitten Vaccines", "<p>Schedule at eight weeks.</p>", true)

	rec := env.do(t, http.MethodPost, "/api/articles/"+itoa(a.ID)+"/autosave", map[string]string{"title": "x"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFilterAndPreview(t *testing.T) {
	env := newAPIEnv(t)
	env.create(t, "Public Post", "<p>Visible to everyone.</p>", true)
	env.create(t, "Secret Draft", "<p>Not yet ready.</p>", false)

	var list []models.Article
	rec := env.do(t, http.MethodGet, "/api/articles?published=1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "public-post", list[0].Slug)

	rec = env.do(t, http.MethodGet, "/api/articles?published=maybe", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/articles/preview", map[string]string{
		"title": "Preview Me", "content": "<p>Looks <em>good</em>.</p>",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.PreviewResponse
	decode(t, rec, &p)
	assert.True(t, p.Valid)
	assert.Equal(t, "preview-me", p.Slug)
}

func TestAdminEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	a := env.create(t, "Budgie Baths", "<p>Shallow dish of water.</p>", true)
	draft := env.create(t, "Canary Songs", "<p>Morning concerts.</p>", false)

	rec := env.do(t, http.MethodGet, "/api/admin/stats", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.ArticleStats
	decode(t, rec, &stats)
	assert.Equal(t, models.ArticleStats{Total: 2, Published: 1, Drafts: 1}, stats)

	require.NoError(t, env.blob.DeleteFile("articles/budgie-baths.html"))
	rec = env.do(t, http.MethodGet, "/api/admin/integrity", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var report models.IntegrityReport
	decode(t, rec, &report)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, models.IssueMissingHTML, report.Issues[0].Type)

	rec = env.do(t, http.MethodPost, "/api/admin/integrity/"+itoa(a.ID)+"/repair", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/admin/integrity/"+itoa(draft.ID)+"/repair", nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/sitemap", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	data, err := env.blob.ReadFile("sitemap.xml")
	require.NoError(t, err)
	assert.Contains(t, string(data), baseURL+"/articles/budgie-baths.html")
	assert.NotContains(t, string(data), "canary-songs")
}

func TestImageUploadAndMultipartCreate(t *testing.T) {
	env := newAPIEnv(t)

	var pic bytes.Buffer
	require.NoError(t, png.Encode(&pic, image.NewRGBA(image.Rect(0, 0, 900, 300))))

	form := func(fields map[string]string) (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		fw, err := mw.CreateFormFile("image", "hamster.png")
		require.NoError(t, err)
		_, err = fw.Write(pic.Bytes())
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	send := func(path string, body *bytes.Buffer, ctype string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", ctype)
		req.Header.Set("Authorization", "Bearer "+env.token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	body, ctype := form(nil)
	rec := send("/api/images", body, ctype)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var up map[string]string
	decode(t, rec, &up)
	assert.True(t, strings.HasPrefix(up["url"], "/images/"))

	body, ctype = form(map[string]string{
		"title": "Hamster Wheels", "content": "<p>Solid running surface.</p>", "published": "true",
	})
	rec = send("/api/articles", body, ctype)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a models.Article
	decode(t, rec, &a)
	require.True(t, strings.HasPrefix(a.ImageURL, "/images/"))
	ok, err := env.blob.Exists(strings.TrimPrefix(a.ImageURL, "/"))
	require.NoError(t, err)
	assert.True(t, ok)

	page, err := env.blob.ReadFile("articles/hamster-wheels.html")
	require.NoError(t, err)
	assert.Contains(t, string(page), `src="`+a.ImageURL+`"`)

	// a rejected article must not leave its upload behind
	body, ctype = form(map[string]string{"title": "No", "content": "x"})
	rec = send("/api/articles", body, ctype)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	names, err := env.blob.ListDir("images")
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestHealthAndRequestID(t *testing.T) {
	env := newAPIEnv(t)
	rec := env.do(t, http.MethodGet, "/api/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
