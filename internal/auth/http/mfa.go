package http

import (
	"encoding/json"
	"net/http"

	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/pkg/httpx"
	"github.com/artpromedia/oru/pkg/slogx"
)

// MFAVerifyRequest is the body for POST /v1/mfa/verify.
type MFAVerifyRequest struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// MFAHandler handles the second-factor challenge.
type MFAHandler struct {
	MFAService *service.MFAService
}

func (h *MFAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse mfa request", "err", err)
		errInvalidRequest.WriteError(w)
		return
	}
	if req.SessionID == "" || req.Token == "" {
		errInvalidRequest.WriteError(w)
		return
	}

	result, err := h.MFAService.Verify(ctx, req.SessionID, req.Token)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == errServerError {
			log.Error("mfa verification failed", "session_id", req.SessionID, "err", err)
		} else {
			log.Warn("mfa verification rejected", "session_id", req.SessionID, "reason", apiErr.Code)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
