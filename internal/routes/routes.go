package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"pawstails/internal/handlers"
	"pawstails/internal/middleware"
	"pawstails/internal/services"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Articles *handlers.ArticleHandler
	Images   *handlers.ImageHandler
	Admin    *handlers.AdminHandler
	Logs     *handlers.AdminLogsHandler
	Health   *handlers.HealthHandler
}

// InitRoutes registers the JSON API. Static files, /metrics and /swagger/ are
// mounted by the caller.
func InitRoutes(router *mux.Router, h Handlers, auth *services.AuthService) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- public ---
	api.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", h.Auth.Verify).Methods(http.MethodGet)
	api.HandleFunc("/articles", h.Articles.List).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id:[0-9]+}", h.Articles.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/articles/slug/{slug}", h.Articles.GetBySlug).Methods(http.MethodGet)

	// --- bearer protected ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(auth))
	protected.Use(middleware.OnlyRole("admin"))

	protected.HandleFunc("/articles", h.Articles.Create).Methods(http.MethodPost)
	protected.HandleFunc("/articles/preview", h.Articles.Preview).Methods(http.MethodPost)
	protected.HandleFunc("/articles/{id:[0-9]+}", h.Articles.Update).Methods(http.MethodPut)
	protected.HandleFunc("/articles/{id:[0-9]+}", h.Articles.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/articles/{id:[0-9]+}/publish", h.Articles.SetPublish).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/articles/{id:[0-9]+}/autosave", h.Articles.Autosave).Methods(http.MethodPost)
	protected.HandleFunc("/articles/{id:[0-9]+}/versions", h.Articles.Versions).Methods(http.MethodGet)
	protected.HandleFunc("/articles/{id:[0-9]+}/versions/{versionId:[0-9]+}/restore", h.Articles.Restore).Methods(http.MethodPost)
	protected.HandleFunc("/images", h.Images.Upload).Methods(http.MethodPost)

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/stats", h.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/integrity", h.Admin.Integrity).Methods(http.MethodGet)
	admin.HandleFunc("/integrity/{id:[0-9]+}/repair", h.Admin.Repair).Methods(http.MethodPost)
	admin.HandleFunc("/sitemap", h.Admin.RegenerateSitemap).Methods(http.MethodPost)
	admin.HandleFunc("/logs/days", h.Logs.ListDays).Methods(http.MethodGet)
	admin.HandleFunc("/logs", h.Logs.GetLogs).Methods(http.MethodGet)
	admin.HandleFunc("/logs/stats", h.Logs.Stats).Methods(http.MethodGet)
}
