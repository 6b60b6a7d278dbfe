package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/bloglist/internal/domain"
	"github.com/vedran77/bloglist/internal/service"
	"github.com/vedran77/bloglist/internal/transport/http/middleware"
	"github.com/vedran77/bloglist/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Title, input.URL); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	post, err := h.postService.Create(r.Context(), user, input)
	if err != nil {
		slog.Error("create post", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		slog.Error("list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Title, input.URL); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	post, err := h.postService.Update(r.Context(), user, postID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrNotPostOwner):
			writeError(w, http.StatusUnauthorized, "unauthorized operation")
		default:
			slog.Error("update post", "error", err)
			writeError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), user, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrNotPostOwner):
			writeError(w, http.StatusUnauthorized, "unauthorized operation")
		default:
			slog.Error("delete post", "error", err)
			writeError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
