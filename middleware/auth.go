package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kikgames18/service-kpi-dashboard/authenticator"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
	"github.com/kikgames18/service-kpi-dashboard/userctx"
)

// RequireAuth verifies the Bearer token, loads the profile it names, and
// stores the authenticated user in the request context. Requests without a
// valid token get a JSON 401.
func RequireAuth(tokens authenticator.TokenProvider, profiles repositories.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyBearer(r, tokens)
			if !ok {
				unauthorized(w, "Unauthorized")
				return
			}

			profile, err := profiles.GetByID(r.Context(), claims.UserID)
			if err != nil {
				unauthorized(w, "User not found")
				return
			}

			user := userctx.User{
				ID:    profile.ID,
				Email: profile.Email,
				Role:  profile.Role,
			}
			if profile.FullName != nil {
				user.FullName = *profile.FullName
			}

			next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), user)))
		})
	}
}

func verifyBearer(r *http.Request, tokens authenticator.TokenProvider) (*authenticator.Claims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims, err := tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
