package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account and authentication HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/user/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"token": token})
}

// Login handles POST /api/user/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if err == model.ErrUserNotFound {
			// Original wording, matched by the storefront.
			writeFailure(w, http.StatusOK, "User with this email doesn't exist")
			return
		}
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"token": token})
}

// AdminLogin handles POST /api/user/admin.
func (h *UserHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	token, err := h.service.AdminLogin(&req)
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"token": token})
}

// List handles GET /api/user/list (admin). Consumed by the dashboard.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	writeSuccess(w, http.StatusOK, envelope{"users": users})
}
