package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/response"
)

// AdminOnly gates reviewer and statutory-schedule endpoints.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "missing or invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
