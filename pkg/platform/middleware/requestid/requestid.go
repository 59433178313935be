// Package requestid assigns a correlation id to every request so log lines
// and audit events from one operation can be tied together.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"druid/pkg/requestcontext"
)

// Header carries the correlation id on responses (and is honored on requests
// so upstream proxies can propagate their own).
const Header = "X-Request-Id"

// Middleware stores a request id in the context, generating one when the
// client did not supply it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
