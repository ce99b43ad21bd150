package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/security"
	"carsharing-backend/internal/service"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
	users        service.UserService
}

func NewAuthMiddleware(tm security.TokenManager, users service.UserService) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, users: users}
}

// Handler authenticates and authorizes requests against the endpoint
// policy table. It has to run after route matching so the path template is
// known.
func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tpl := routeTemplate(r)
		policy, ok := config.GetPolicy(r.Method, tpl)
		if !ok {
			logger.Warn("No security policy for route", "method", r.Method, "route", tpl)
			writeErrorMessage(w, http.StatusForbidden, "access denied")
			return
		}
		if policy.Level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}
		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeErrorMessage(w, http.StatusUnauthorized, "access token required")
			return
		}

		// The stored role wins over the one in the token so that a toggle
		// takes effect without a new login.
		user, err := a.users.GetByEmail(r.Context(), claims.Email())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeErrorMessage(w, http.StatusUnauthorized, "unknown user")
				return
			}
			writeError(w, err)
			return
		}
		if !policy.Allows(user.Role) {
			writeErrorMessage(w, http.StatusForbidden, "access denied")
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), user)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:]), true
	}
	return "", false
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return r.URL.Path
	}
	return tpl
}
