package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
)

// AdminOnly gates admin routes on the token's role claim. This is a cheap
// first filter only; the directory service re-verifies admin status against
// the database before executing anything.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, session.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.HandleError(w, directory.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
