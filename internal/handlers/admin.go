package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

type AdminHandler struct {
	articles  services.ArticleService
	integrity *services.IntegrityService
	sitemap   *services.SitemapService
}

func NewAdminHandler(articles services.ArticleService, integrity *services.IntegrityService, sitemap *services.SitemapService) *AdminHandler {
	return &AdminHandler{articles: articles, integrity: integrity, sitemap: sitemap}
}

// Stats godoc
// @Summary Article counts
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.ArticleStats
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.articles.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load stats")
		return
	}
	helpers.JSON(w, http.StatusOK, stats)
}

// Integrity godoc
// @Summary Compare published articles with static pages
// @Description With repair=true every missing page is regenerated.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param repair query bool false "Regenerate missing pages"
// @Success 200 {object} models.IntegrityReport
// @Router /api/admin/integrity [get]
func (h *AdminHandler) Integrity(w http.ResponseWriter, r *http.Request) {
	repair, _ := strconv.ParseBool(r.URL.Query().Get("repair"))
	if repair {
		report, err := h.integrity.Sweep(r.Context(), true)
		if err != nil {
			writeServiceError(w, r, err, "Integrity check failed")
			return
		}
		helpers.JSON(w, http.StatusOK, report)
		return
	}

	issues, err := h.integrity.Check(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Integrity check failed")
		return
	}
	logger.WithCtx(r.Context()).Info("Integrity check requested", zap.Int("issues", len(issues)))
	helpers.JSON(w, http.StatusOK, map[string]any{"issues": issues, "repaired": 0})
}

// Repair godoc
// @Summary Regenerate the static page of a published article
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} helpers.Response
// @Failure 409 {object} helpers.Response "Article is not published"
// @Router /api/admin/integrity/{id}/repair [post]
func (h *AdminHandler) Repair(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	article, err := h.integrity.Repair(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Repair failed")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// RegenerateSitemap godoc
// @Summary Rewrite sitemap.xml
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/admin/sitemap [post]
func (h *AdminHandler) RegenerateSitemap(w http.ResponseWriter, r *http.Request) {
	if err := h.sitemap.Regenerate(r.Context()); err != nil {
		writeServiceError(w, r, err, "Sitemap regeneration failed")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"sitemap": h.sitemap.URL()})
}
