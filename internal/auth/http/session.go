package http

import (
	"net/http"

	"github.com/artpromedia/oru/pkg/httpx"
)

// SessionHandler handles GET /v1/session, returning the caller's session
// as refreshed by the authentication middleware.
type SessionHandler struct{}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		errInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sess)
}
