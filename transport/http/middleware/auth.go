package middleware

import (
	"crypto/subtle"
	"net/http"

	"bookingdesk/shared/constant"
	"bookingdesk/shared/failure"
	"bookingdesk/transport/http/response"
)

// APIKey guards the API with a shared key for service-to-service callers
// (the reservation workflow that acts on check results). Deployments without
// a configured key run open, e.g. on a trusted internal network.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configured := a.config.App.APIKey
		if configured == "" {
			next.ServeHTTP(w, r)

			return
		}

		_, scope := a.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := r.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(configured)) != 1 {
			err := failure.ForbiddenError

			response.WithError(w, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.End()
		next.ServeHTTP(w, r)
	})
}
