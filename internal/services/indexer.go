package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/metrics"
)

// Pinger announces an updated sitemap to a search engine.
type Pinger interface {
	Ping(ctx context.Context, sitemapURL string) error
}

// HTTPPinger issues a GET to Endpoint with the escaped sitemap URL
// substituted for its %s verb.
type HTTPPinger struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPPinger(endpoint string) *HTTPPinger {
	return &HTTPPinger{Endpoint: endpoint, Client: &http.Client{}}
}

func (p *HTTPPinger) Ping(ctx context.Context, sitemapURL string) error {
	target := p.Endpoint
	if strings.Contains(target, "%s") {
		target = fmt.Sprintf(target, url.QueryEscape(sitemapURL))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("indexer responded %s", resp.Status)
	}
	return nil
}

// IndexNotifier pings the indexer in the background. A ping never fails the
// request that triggered it; errors are only logged and counted.
type IndexNotifier struct {
	pinger     Pinger
	sitemapURL string
	timeout    time.Duration
	rec        *metrics.Recorder
	wg         sync.WaitGroup
}

func NewIndexNotifier(pinger Pinger, sitemapURL string, timeout time.Duration, rec *metrics.Recorder) *IndexNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IndexNotifier{pinger: pinger, sitemapURL: sitemapURL, timeout: timeout, rec: rec}
}

// Notify starts a detached ping announcing that slug was published.
func (n *IndexNotifier) Notify(ctx context.Context, slug string) {
	if n == nil || n.pinger == nil {
		return
	}
	// the ping outlives the request
	ctx = context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		pingCtx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()

		log := logger.WithCtx(ctx)
		err := n.pinger.Ping(pingCtx, n.sitemapURL)
		n.rec.IndexerPinged(err)
		if err != nil {
			log.Warn("Search engine ping failed", zap.String("slug", slug), zap.Error(err))
			return
		}
		log.Info("Search engine notified", zap.String("slug", slug))
	}()
}

// Wait blocks until every in-flight ping has finished.
func (n *IndexNotifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
