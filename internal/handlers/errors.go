package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

// writeServiceError maps service errors onto HTTP statuses. Anything it does
// not recognise is logged and reported as a 500 with msg.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		helpers.ValidationError(w, vErr.Messages)
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, services.ErrNotPublished):
		helpers.Error(w, http.StatusConflict, "Article is not published")
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidImage):
		helpers.Error(w, http.StatusBadRequest, "Invalid image"+strings.TrimPrefix(err.Error(), services.ErrInvalidImage.Error()))
	default:
		logger.WithCtx(r.Context()).Error(msg, zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, msg)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrVersionNotFound):
		return "Version not found"
	case errors.Is(err, services.ErrNotFoundOrPublished):
		return "Draft article not found or already published"
	default:
		return "Article not found"
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}
