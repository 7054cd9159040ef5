package http

import (
	"net/http"

	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

// internalError logs err against the request and answers 500 server_error.
// The request id is echoed so callers can quote it.
func internalError(w http.ResponseWriter, r *http.Request, desc string, err error, attrs ...any) {
	ctx := r.Context()
	slogx.FromContext(ctx).ErrorContext(ctx, desc, append(attrs, "error", err)...)

	if id := slogx.RequestID(ctx); id != "" {
		desc += " (request " + id + ")"
	}
	authsdk.ErrServerError.WithDescription(desc).WriteError(w)
}
