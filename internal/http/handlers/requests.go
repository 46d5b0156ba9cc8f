package handlers

import (
	"net/http"

	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

// RequestHandler serves the delivery request endpoints.
type RequestHandler struct {
	delivery deliveryUsecase
	query    queryUsecase
	logger   logx.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(logger logx.Logger, delivery deliveryUsecase, query queryUsecase) *RequestHandler {
	return &RequestHandler{delivery: delivery, query: query, logger: logger}
}

// Create handles POST /api/servicios.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if !allowedFor(r, domain.RoleClient, req.ClientID) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	id, err := h.delivery.Create(r.Context(), domain.NewRequest{
		ClientID: req.ClientID,
		Pickup:   req.Pickup,
		Dropoff:  req.Dropoff,
	})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{Success: true, Message: "request created", ID: id})
}

// Pending handles GET /api/servicios/pendientes.
func (h *RequestHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.query.PendingQueue(r.Context())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, pendingToResponse(list))
}

// Assign handles POST /api/servicios/asignar.
func (h *RequestHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if _, err := h.delivery.Assign(r.Context(), req.RequestID, req.CourierID); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, resultResponse{Success: true, Message: "courier assigned"})
}

// ClientHistory handles GET /api/servicios/cliente/{id}.
func (h *RequestHandler) ClientHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if !allowedFor(r, domain.RoleClient, id) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.query.ClientHistory(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToResponse(list))
}

// CourierActive handles GET /api/servicios/motorizado/{id}. Responds null when idle.
func (h *RequestHandler) CourierActive(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if !allowedFor(r, domain.RoleCourier, id) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	active, err := h.query.CourierActive(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, activeToResponse(active))
}

// UpdateState handles POST /api/servicios/actualizar.
func (h *RequestHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req updateStateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	target, ok := domain.ParseTransitionTarget(req.NewState)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid state")
		return
	}
	if !allowedFor(r, domain.RoleCourier, req.CourierID) {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden")
		return
	}

	res, err := h.delivery.Transition(r.Context(), req.RequestID, req.CourierID, target)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, transitionResponse{
		Success:         true,
		Message:         "state updated",
		State:           res.State,
		CourierReleased: res.CourierReleased,
	})
}

// allowedFor reports whether the caller may act on behalf of the user id.
// Without claims (enforcement off) everything is allowed; admins may act for anyone;
// a caller holding role may act only for itself.
func allowedFor(r *http.Request, role domain.Role, id int64) bool {
	c := auth.ClaimsFromContext(r.Context())
	if c == nil || c.Role == domain.RoleAdmin {
		return true
	}
	if c.Role == role {
		return c.UserID == id
	}
	return true
}
