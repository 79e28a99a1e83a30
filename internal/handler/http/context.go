package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// userIDFromRequest pulls the authenticated subject out of the verified
// token. Handlers behind AuthRequired can rely on the claim being present.
func userIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	id, ok := claims["user_id"].(string)
	return id, ok && id != ""
}

func emailFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
