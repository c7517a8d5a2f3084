package handlers

import (
	"net/http"

	"github.com/dvalverde/pos-companion/internal/api/middleware"
	"github.com/dvalverde/pos-companion/internal/models"
	service "github.com/dvalverde/pos-companion/internal/services"
	"github.com/dvalverde/pos-companion/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	auth      *service.AuthService
	validator *validator.Validate
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator.New(),
	}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		user, err := h.auth.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", "error", err.Error())
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)

	}
}

func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.auth.Logout(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "logged out"})

	}
}

func (h *AuthHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if user, ok := middleware.UserFromContext(r.Context()); ok {
			response.Success(w, http.StatusOK, user)
			return
		}

		user, err := h.auth.CurrentUser(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)

	}
}
