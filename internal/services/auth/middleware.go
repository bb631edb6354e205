// filepath: internal/services/auth/middleware.go
package auth

import (
	"encoding/json"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"net/http"
	"strings"
)

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	Token TokenService
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(token TokenService) *Middleware {
	return &Middleware{Token: token}
}

// AuthMiddleware requires a valid Bearer token and stores the resolved
// user in the request context.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="flexnas"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		user, err := m.Token.ValidateToken(r.Context(), tokenString)
		if err != nil {
			logging.Log.Warnf("AuthMiddleware: Invalid Bearer token: %v", err)
			if strings.Contains(err.Error(), "expired") {
				// Send a specific error for expired tokens
				writeError(w, http.StatusUnauthorized, "Token expired")
			} else {
				writeError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(services.WithUser(r.Context(), user)))
	})
}

// RequirePermission lets admins and holders of p through.
func (m *Middleware) RequirePermission(p models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := services.UserFromContext(r.Context())
			if user == nil {
				logging.Log.Warnf("RequirePermission: No user found in context for %s", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !user.Can(p) {
				logging.Log.Warnf("RequirePermission: Access DENIED for user '%s'. Missing '%s' for %s", user.Username, p, r.URL.Path)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin lets only admins through.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := services.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			logging.Log.Warnf("RequireAdmin: Access DENIED for user '%s' on %s", user.Username, r.URL.Path)
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
