package controllers

import (
	"net/http"

	"github.com/Viniciusgrn/forFunOrganizado/api/middleware"
	"github.com/Viniciusgrn/forFunOrganizado/api/responses"
	"github.com/Viniciusgrn/forFunOrganizado/api/validators"
	authsvc "github.com/Viniciusgrn/forFunOrganizado/internal/auth"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
)

// Login authenticates admin credentials and returns a bearer token.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Logout revokes the session behind the presented token. Runs behind the
// auth middleware, which seeds the access id.
func Logout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"logged_out": true})
	}
}
