package handlers

import (
	"net/http"

	"delivery-coordinator/internal/logx"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	usecase identityUsecase
	logger  logx.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger logx.Logger, uc identityUsecase) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	reg, err := req.toModel()
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid birth date")
		return
	}

	id, err := h.usecase.Register(r.Context(), reg)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{Success: true, Message: "registered", ID: id})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	s, err := h.usecase.Authenticate(r.Context(), req.User, req.Pass)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loginResponse{
		Success:   true,
		Role:      s.Role,
		Name:      s.Name,
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	})
}
