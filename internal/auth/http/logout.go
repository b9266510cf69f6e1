package http

import (
	"encoding/json"
	"net/http"

	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/pkg/httpx"
	"github.com/artpromedia/oru/pkg/slogx"
)

// LogoutRequest is the body for POST /v1/logout.
type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}

// LogoutHandler handles POST /v1/logout. Logout always succeeds for
// well-formed requests, whether or not the session still exists.
type LogoutHandler struct {
	SessionService *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse logout request", "err", err)
		errInvalidRequest.WriteError(w)
		return
	}
	if req.SessionID == "" {
		errInvalidRequest.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(ctx, req.SessionID); err != nil {
		log.Error("logout failed", "session_id", req.SessionID, "err", err)
		errServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
