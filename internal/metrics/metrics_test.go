package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder(prom.NewRegistry())

	r.ArticleOp("create", nil)
	r.ArticleOp("create", errors.New("boom"))
	r.ArticleOp("create", nil)
	r.PageRendered("fallback")
	r.SitemapRegenerated(nil)
	r.IndexerPinged(errors.New("timeout"))
	r.VersionEvicted()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.articleOps.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.articleOps.WithLabelValues("create", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.pagesRendered.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sitemapRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.indexerPings.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.versionEvicted))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ArticleOp("delete", nil)
		r.PageRendered("template")
		r.SitemapRegenerated(nil)
		r.IndexerPinged(nil)
		r.VersionEvicted()
	})
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder(nil)
	r.PageRendered("template")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pawstails_pages_rendered_total{source="template"} 1`)
}
