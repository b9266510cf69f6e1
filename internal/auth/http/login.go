package http

import (
	"encoding/json"
	"net/http"

	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/pkg/httpx"
	"github.com/artpromedia/oru/pkg/slogx"
)

// LoginRequest is the body for POST /v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
}

// LoginHandler handles POST /v1/login.
type LoginHandler struct {
	LoginService *service.LoginService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse login request", "err", err)
		errInvalidRequest.WriteError(w)
		return
	}

	result, err := h.LoginService.Login(ctx, req.Email, req.Password, req.TenantID)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == errServerError {
			log.Error("login failed", "err", err)
		} else {
			log.Warn("login rejected", "tenant_id", req.TenantID, "reason", apiErr.Code)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, result)
}
