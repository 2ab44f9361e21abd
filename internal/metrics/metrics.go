// Package metrics holds the Prometheus counters for article publishing.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pawstails"

// Recorder is safe to use as a nil pointer, in which case nothing is recorded.
type Recorder struct {
	reg            *prom.Registry
	articleOps     *prom.CounterVec
	pagesRendered  *prom.CounterVec
	sitemapRuns    *prom.CounterVec
	indexerPings   *prom.CounterVec
	versionEvicted prom.Counter
}

func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{reg: reg}
	r.articleOps = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "article_operations_total",
		Help:      "Article lifecycle operations by kind and result",
	}, []string{"op", "result"})
	r.pagesRendered = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "pages_rendered_total",
		Help:      "Static pages rendered, by template source",
	}, []string{"source"})
	r.sitemapRuns = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "sitemap_regenerations_total",
		Help:      "Sitemap regenerations by result",
	}, []string{"result"})
	r.indexerPings = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "indexer_pings_total",
		Help:      "Search engine pings by result",
	}, []string{"result"})
	r.versionEvicted = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "version_evictions_total",
		Help:      "Version snapshots evicted by the retention bound",
	})
	reg.MustRegister(r.articleOps, r.pagesRendered, r.sitemapRuns, r.indexerPings, r.versionEvicted)
	return r
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

func (r *Recorder) ArticleOp(op string, err error) {
	if r == nil {
		return
	}
	r.articleOps.WithLabelValues(op, result(err)).Inc()
}

// PageRendered counts a page by template source: "template" or "fallback".
func (r *Recorder) PageRendered(source string) {
	if r == nil {
		return
	}
	r.pagesRendered.WithLabelValues(source).Inc()
}

func (r *Recorder) SitemapRegenerated(err error) {
	if r == nil {
		return
	}
	r.sitemapRuns.WithLabelValues(result(err)).Inc()
}

func (r *Recorder) IndexerPinged(err error) {
	if r == nil {
		return
	}
	r.indexerPings.WithLabelValues(result(err)).Inc()
}

func (r *Recorder) VersionEvicted() {
	if r == nil {
		return
	}
	r.versionEvicted.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
