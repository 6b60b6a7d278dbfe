package handlers

import (
	"net/http"

	"github.com/vedran77/bloglist/internal/repository"
	"github.com/vedran77/bloglist/internal/service"
	"github.com/vedran77/bloglist/internal/transport/http/middleware"
)

// RegisterRoutes wires all handlers onto the mux. Read endpoints are
// public; post mutations go through the auth middleware.
func RegisterRoutes(mux *http.ServeMux, authService *service.AuthService, postService *service.PostService, userRepo repository.UserRepository) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService, userRepo)
	postHandler := NewPostHandler(postService)

	auth := middleware.Auth(authService)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Public
	mux.HandleFunc("GET /posts", postHandler.List)
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("POST /users", userHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Protected
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("PUT /posts/{id}", auth(http.HandlerFunc(postHandler.Update)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
}
