package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vedran77/bloglist/internal/domain"
	"github.com/vedran77/bloglist/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// GetUser extracts the authenticated user from the request context.
// Returns nil if the request did not pass through Auth.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

// Auth verifies the bearer token, resolves its subject to a live user,
// and stores that user in the request context. The downstream handler
// never runs for an unverified request.
func Auth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "token missing or invalid")
				return
			}

			userID, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "token missing or invalid")
				return
			}

			// A verified token whose subject no longer exists answers 404,
			// matching the API contract.
			user, err := auth.GetUserByID(r.Context(), userID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "something went wrong")
				return
			}
			if user == nil {
				writeError(w, http.StatusNotFound, "userId missing or invalid")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
