package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/models"
	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

type ArticleHandler struct {
	svc       services.ArticleService
	images    *services.ImageService
	maxUpload int64
}

func NewArticleHandler(svc services.ArticleService, images *services.ImageService, maxUpload int64) *ArticleHandler {
	return &ArticleHandler{svc: svc, images: images, maxUpload: maxUpload}
}

// decodeArticle reads either a JSON body or a multipart form with an optional
// "image" file. An uploaded image is stored before the article is saved; the
// caller removes it again if saving fails.
func (h *ArticleHandler) decodeArticle(w http.ResponseWriter, r *http.Request) (models.ArticleRequest, error) {
	var req models.ArticleRequest
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errBadJSON
		}
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return req, errBadForm
	}
	req = models.ArticleRequest{
		Title:           r.FormValue("title"),
		Content:         r.FormValue("content"),
		Excerpt:         r.FormValue("excerpt"),
		Author:          r.FormValue("author"),
		MetaDescription: r.FormValue("meta_description"),
		MetaKeywords:    r.FormValue("meta_keywords"),
	}
	if v := r.FormValue("published"); v != "" {
		p, err := strconv.ParseBool(v)
		if err != nil {
			return req, errBadForm
		}
		req.Published = &p
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, errBadForm
	}
	defer file.Close()

	url, err := h.images.Save(r.Context(), file, header.Filename)
	if err != nil {
		return req, err
	}
	req.ImageURL = url
	return req, nil
}

var (
	errBadJSON = errors.New("Invalid JSON")
	errBadForm = errors.New("Invalid form data")
)

func (h *ArticleHandler) discardUpload(r *http.Request, req models.ArticleRequest) {
	if req.ImageURL == "" {
		return
	}
	if err := h.images.Delete(r.Context(), req.ImageURL); err != nil {
		logger.WithCtx(r.Context()).Warn("Orphaned upload not removed", zap.String("url", req.ImageURL), zap.Error(err))
	}
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadJSON) || errors.Is(err, errBadForm) {
		logger.WithCtx(r.Context()).Warn("Request body rejected", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	writeServiceError(w, r, err, "Image upload failed")
}

// Create godoc
// @Summary Create an article
// @Description Accepts JSON or multipart/form-data with an optional "image" file. Published articles get a static page, a sitemap entry and a search engine ping.
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param input body models.ArticleRequest true "Article"
// @Success 201 {object} models.Article
// @Failure 400 {object} helpers.Response "Validation failed"
// @Failure 500 {object} helpers.Response
// @Router /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeArticle(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	article, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.discardUpload(r, req)
		writeServiceError(w, r, err, "Failed to create article")
		return
	}
	helpers.JSON(w, http.StatusCreated, article)
}

// Update godoc
// @Summary Update an article
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path int true "Article ID"
// @Param input body models.ArticleRequest true "Article"
// @Success 200 {object} models.Article
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	req, err := h.decodeArticle(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	article, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.discardUpload(r, req)
		writeServiceError(w, r, err, "Failed to update article")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// SetPublish godoc
// @Summary Publish or unpublish an article
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param input body models.PublishRequest true "Target state"
// @Success 200 {object} models.Article
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id}/publish [patch]
func (h *ArticleHandler) SetPublish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	var req models.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	article, err := h.svc.SetPublish(r.Context(), id, req.Published)
	if err != nil {
		writeServiceError(w, r, err, "Failed to change publish state")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Autosave godoc
// @Summary Autosave a draft
// @Description Overwrites draft content without validation, version bump or snapshot.
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param input body models.AutosaveRequest true "Draft content"
// @Success 200 {object} models.Article
// @Failure 404 {object} helpers.Response "Draft article not found or already published"
// @Router /api/articles/{id}/autosave [post]
func (h *ArticleHandler) Autosave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	var req models.AutosaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	article, err := h.svc.Autosave(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, "Autosave failed")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Versions godoc
// @Summary List stored versions of an article
// @Tags articles
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} models.ArticleVersion
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id}/versions [get]
func (h *ArticleHandler) Versions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	list, err := h.svc.Versions(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load versions")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Restore godoc
// @Summary Restore an article from a stored version
// @Tags articles
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Article ID"
// @Param versionId path int true "Version ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id}/versions/{versionId}/restore [post]
func (h *ArticleHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	versionID, ok2 := pathID(r, "versionId")
	if !ok || !ok2 {
		helpers.Error(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	article, err := h.svc.Restore(r.Context(), id, versionID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to restore version")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Delete godoc
// @Summary Delete an article with its page, image and versions
// @Tags articles
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {string} string "Article deleted"
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete article")
		return
	}
	helpers.JSON(w, http.StatusOK, "Article deleted")
}

// GetByID godoc
// @Summary Get an article by ID
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} helpers.Response
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid article ID")
		return
	}
	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load article")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// GetBySlug godoc
// @Summary Get an article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.Article
// @Failure 404 {object} helpers.Response
// @Router /api/articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeServiceError(w, r, err, "Failed to load article")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// List godoc
// @Summary List articles newest first
// @Tags articles
// @Produce json
// @Param published query string false "1 for published only, 0 for drafts only"
// @Success 200 {array} models.Article
// @Router /api/articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	var published *bool
	if v := r.URL.Query().Get("published"); v != "" {
		p, err := strconv.ParseBool(v)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Invalid published filter")
			return
		}
		published = &p
	}
	list, err := h.svc.List(r.Context(), published)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list articles")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Preview godoc
// @Summary Validate and sanitize content without saving
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.PreviewRequest true "Draft"
// @Success 200 {object} models.PreviewResponse
// @Router /api/articles/preview [post]
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	helpers.JSON(w, http.StatusOK, h.svc.Preview(req))
}
