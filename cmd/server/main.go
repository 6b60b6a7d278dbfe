package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedran77/bloglist/internal/config"
	"github.com/vedran77/bloglist/internal/database"
	"github.com/vedran77/bloglist/internal/repository"
	postgresrepo "github.com/vedran77/bloglist/internal/repository/postgres"
	sqliterepo "github.com/vedran77/bloglist/internal/repository/sqlite"
	"github.com/vedran77/bloglist/internal/service"
	"github.com/vedran77/bloglist/internal/transport/http/handlers"
	"github.com/vedran77/bloglist/internal/transport/http/middleware"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	// Stores
	var userRepo repository.UserRepository
	var postRepo repository.PostRepository

	switch cfg.DBDriver {
	case "postgres":
		pool, err := database.Connect(cfg)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		userRepo = postgresrepo.NewUserRepo(pool)
		postRepo = postgresrepo.NewPostRepo(pool)
	case "sqlite":
		db, err := sqliterepo.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		userRepo = sqliterepo.NewUserRepo(db)
		postRepo = sqliterepo.NewPostRepo(db)
	default:
		slog.Error("unknown DB_DRIVER", "driver", cfg.DBDriver)
		os.Exit(1)
	}
	slog.Info("connected to database", "driver", cfg.DBDriver)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	postService := service.NewPostService(postRepo, userRepo)

	// Routes
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, authService, postService, userRepo)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           middleware.CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}
