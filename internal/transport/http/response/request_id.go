package response

import (
	"net/http"

	appctx "github.com/endurancehub/endurance-hub/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the middleware.
func RequestIDFromContext(r *http.Request) string {
	id, _ := appctx.RequestID(r.Context())
	return id
}
