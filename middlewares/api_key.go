package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/jobboardhq/job-aggregator-service/common/utils"
)

// ApiKey guards a route group with a static X-API-KEY header check. An empty
// configured key locks the group down entirely rather than leaving it open.
func ApiKey(apiKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				utils.WriteError(w, http.StatusServiceUnavailable, "Admin API key is not configured")
				return
			}

			provided := r.Header.Get("X-API-KEY")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				utils.WriteError(w, http.StatusForbidden, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
