package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"gyanghar/internal/models"
	"gyanghar/internal/repository"
	"gyanghar/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	userRepo    *repository.UserRepository
	jwtSecret   string
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(userRepo *repository.UserRepository, jwtSecret string) *Middleware {
	return &Middleware{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		rateLimiter: security.NewRateLimiter(10, time.Minute),
	}
}

// RequireAuth validates the bearer token and loads the user into the
// request context. Deactivated accounts are rejected even with a valid
// token.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		claims, err := security.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), m.jwtSecret)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		user, err := m.userRepo.GetUserByID(claims.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load user", err)
			return
		}
		if user == nil || !user.IsActive || !user.IsApproved {
			respondWithError(w, http.StatusUnauthorized, "Account not available", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin requires an authenticated admin
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || user.Role != models.RoleAdmin {
			respondWithError(w, http.StatusForbidden, "Admin access required", nil)
			return
		}
		next(w, r)
	})
}

// RequireLeader requires an authenticated poshak leader or admin
func (m *Middleware) RequireLeader(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsLeader() {
			respondWithError(w, http.StatusForbidden, "Leader access required", nil)
			return
		}
		next(w, r)
	})
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
