package handlers

import (
	"net/http"

	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

// UserHandler serves the administrative user endpoints.
type UserHandler struct {
	identity identityUsecase
	query    queryUsecase
	logger   logx.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger logx.Logger, identity identityUsecase, query queryUsecase) *UserHandler {
	return &UserHandler{identity: identity, query: query, logger: logger}
}

// ListCouriers handles GET /api/motorizados.
func (h *UserHandler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	list, err := h.query.Couriers(r.Context())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, couriersToResponse(list))
}

// Create handles POST /api/usuarios.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid role")
		return
	}

	id, err := h.identity.CreateUser(r.Context(), req.toModel(role))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{Success: true, Message: "user created", ID: id})
}

// Delete handles DELETE /api/usuarios/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.identity.DeleteUser(r.Context(), id); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resultResponse{Success: true, Message: "user deleted"})
}
