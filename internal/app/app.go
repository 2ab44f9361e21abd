package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"pawstails/internal/config"
	"pawstails/internal/content"
	"pawstails/internal/db"
	"pawstails/internal/handlers"
	"pawstails/internal/logger"
	"pawstails/internal/metrics"
	"pawstails/internal/repository"
	"pawstails/internal/routes"
	"pawstails/internal/scheduler"
	"pawstails/internal/services"
	"pawstails/internal/storage"
)

// App is the wired server. Close releases what InitApp opened.
type App struct {
	Router    *mux.Router
	Static    http.Handler
	Notifier  *services.IndexNotifier
	Scheduler *scheduler.Scheduler

	closers []func()
}

type stores struct {
	articles repository.ArticleRepo
	versions repository.VersionRepo
	ping     handlers.Pinger
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.DbDriver {
	case "sqlite":
		conn, err := db.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			articles: repository.NewSQLiteArticleRepo(conn),
			versions: repository.NewSQLiteVersionRepo(conn),
			ping:     conn.PingContext,
			close:    func() { _ = conn.Close() },
		}, nil
	case "postgres":
		pool, err := db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			articles: repository.NewArticleRepo(pool),
			versions: repository.NewVersionRepo(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DbDriver)
	}
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{closers: []func(){st.close}}

	public, err := storage.NewLocal(cfg.PublicDir)
	if err != nil {
		a.Close()
		return nil, err
	}
	templates, err := storage.NewLocal(filepath.Dir(cfg.TemplatePath))
	if err != nil {
		a.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	// services
	pages := services.NewPageGenerator(public, filepath.Base(cfg.TemplatePath), cfg.WebsiteURL, rec).
		WithTemplateStore(templates)
	sitemap := services.NewSitemapService(st.articles, public, cfg.WebsiteURL, rec)
	a.Notifier = services.NewIndexNotifier(newPinger(cfg.IndexerPingURL), sitemap.URL(), cfg.IndexerTimeout, rec)
	images := services.NewImageService(public, cfg.MaxImageWidth, cfg.MaxUploadBytes())
	integrity := services.NewIntegrityService(st.articles, public, pages, sitemap)

	articleSvc := services.NewArticleService(services.ArticleDeps{
		Repo:          st.articles,
		History:       services.NewVersionService(st.versions, rec),
		Pages:         pages,
		Sitemap:       sitemap,
		Notifier:      a.Notifier,
		Images:        images,
		Sanitizer:     content.NewSanitizer(content.PolicyByName(cfg.ContentPolicy)),
		Metrics:       rec,
		DefaultAuthor: cfg.DefaultAuthor,
	})

	authSvc, err := services.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		a.Close()
		return nil, err
	}

	if err := sitemap.Regenerate(ctx); err != nil {
		logger.Log.Warn("Initial sitemap not written", zap.Error(err))
	}

	// handlers
	maxUpload := cfg.MaxUploadBytes()
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc),
		Articles: handlers.NewArticleHandler(articleSvc, images, maxUpload),
		Images:   handlers.NewImageHandler(images, maxUpload),
		Admin:    handlers.NewAdminHandler(articleSvc, integrity, sitemap),
		Logs:     handlers.NewAdminLogsHandler(cfg.LogDir),
		Health:   handlers.NewHealthHandler(st.ping),
	}

	a.Router = mux.NewRouter()
	routes.InitRoutes(a.Router, h, authSvc)
	a.Router.Handle("/metrics", rec.Handler()).Methods(http.MethodGet)
	a.Static = http.FileServer(public.FileSystem())

	if cfg.IntegrityInterval > 0 {
		sched, err := scheduler.NewScheduler()
		if err != nil {
			a.Close()
			return nil, err
		}
		if _, err := sched.ScheduleIntegritySweep(cfg.IntegrityInterval, integrity, cfg.IntegrityAutoRepair); err != nil {
			_ = sched.Stop()
			a.Close()
			return nil, err
		}
		a.Scheduler = sched
	}

	return a, nil
}

// newPinger returns nil, disabling pings, when the endpoint is "off".
func newPinger(endpoint string) services.Pinger {
	if endpoint == "" || strings.EqualFold(endpoint, "off") {
		return nil
	}
	return services.NewHTTPPinger(endpoint)
}

// Close stops background work and releases the database.
func (a *App) Close() {
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(); err != nil {
			logger.Log.Warn("Scheduler stop failed", zap.Error(err))
		}
	}
	a.Notifier.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
