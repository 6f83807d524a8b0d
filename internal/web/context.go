package web

import (
	"net/http"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
)

// withClient returns the request context carrying the client IP and user
// agent for the import history. RemoteAddr has already been resolved by
// middleware.TrustedRealIP.
func withClient(r *http.Request) *http.Request {
	ctx := core.ContextWithClient(r.Context(), r.RemoteAddr, r.UserAgent())
	return r.WithContext(ctx)
}
