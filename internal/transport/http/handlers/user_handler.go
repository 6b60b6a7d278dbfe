package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vedran77/bloglist/internal/domain"
	"github.com/vedran77/bloglist/internal/repository"
	"github.com/vedran77/bloglist/internal/service"
	"github.com/vedran77/bloglist/pkg/validator"
)

type UserHandler struct {
	authService *service.AuthService
	userRepo    repository.UserRepository
}

func NewUserHandler(authService *service.AuthService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{authService: authService, userRepo: userRepo}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validator.ValidateNewUser(input.Username); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "password must be at least 3 characters long")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "expected `username` to be unique")
		default:
			slog.Error("register", "error", err)
			writeError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if users == nil {
		users = []domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}
