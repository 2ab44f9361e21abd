package handlers

import (
	"net/http"

	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

type ImageHandler struct {
	images    *services.ImageService
	maxUpload int64
}

func NewImageHandler(images *services.ImageService, maxUpload int64) *ImageHandler {
	return &ImageHandler{images: images, maxUpload: maxUpload}
}

// Upload godoc
// @Summary Upload an image for use in article content
// @Description The image is scaled down to the configured width and stored as JPEG.
// @Tags images
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param image formData file true "JPEG, PNG, GIF or WebP"
// @Success 201 {object} map[string]string
// @Failure 400 {object} helpers.Response
// @Router /api/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	url, err := h.images.Save(r.Context(), file, header.Filename)
	if err != nil {
		writeServiceError(w, r, err, "Image upload failed")
		return
	}
	helpers.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
