package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login godoc
// @Summary Administrator login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} helpers.Response "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Invalid JSON in Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	token, expires, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Login failed")
		return
	}
	helpers.JSON(w, http.StatusOK, loginResponse{AccessToken: token, ExpiresAt: expires, Username: req.Username})
}

// Verify godoc
// @Summary Check a bearer token
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} verifyResponse
// @Failure 401 {object} helpers.Response
// @Router /api/auth/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	claims, err := h.authService.Verify(token)
	if err != nil {
		helpers.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	helpers.JSON(w, http.StatusOK, verifyResponse{Valid: true, Username: claims.Username, Role: claims.Role})
}
