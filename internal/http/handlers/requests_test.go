package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/domain"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withClaims(req *http.Request, userID int64, role domain.Role) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{UserID: userID, Role: role}))
}

func jsonPost(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRequestHandler_Create_OK(t *testing.T) {
	t.Parallel()

	d := &stubDelivery{
		createFn: func(_ context.Context, in domain.NewRequest) (int64, error) {
			require.Equal(t, domain.NewRequest{ClientID: 3, Pickup: "Av. Lima 1", Dropoff: "Jr. Cusco 9"}, in)
			return 11, nil
		},
	}
	rr := httptest.NewRecorder()
	NewRequestHandler(nil, d, &stubQuery{}).
		Create(rr, jsonPost("/api/servicios", `{"clientId":3,"pickup":"Av. Lima 1","dropoff":"Jr. Cusco 9"}`))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"request created","id":11}`, rr.Body.String())
}

func TestRequestHandler_Create_MissingFields(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewRequestHandler(nil, &stubDelivery{}, &stubQuery{}).
		Create(rr, jsonPost("/api/servicios", `{"clientId":3,"pickup":""}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestHandler_Create_OtherClientForbidden(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := withClaims(jsonPost("/api/servicios", `{"clientId":3,"pickup":"a","dropoff":"b"}`), 4, domain.RoleClient)
	NewRequestHandler(nil, &stubDelivery{}, &stubQuery{}).Create(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequestHandler_Create_UnknownClient(t *testing.T) {
	t.Parallel()

	d := &stubDelivery{
		createFn: func(context.Context, domain.NewRequest) (int64, error) {
			return 0, apperr.E(apperr.ErrNotFound, "create request", nil)
		},
	}
	rr := httptest.NewRecorder()
	NewRequestHandler(nil, d, &stubQuery{}).
		Create(rr, jsonPost("/api/servicios", `{"clientId":99,"pickup":"a","dropoff":"b"}`))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRequestHandler_Pending(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	q := &stubQuery{
		pendingFn: func(context.Context) ([]domain.PendingRequest, error) {
			return []domain.PendingRequest{{ID: 1, Pickup: "a", Dropoff: "b", ClientFirstName: "Ana", ClientLastName: "Ruiz", CreatedAt: created}}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewRequestHandler(nil, &stubDelivery{}, q).Pending(rr, httptest.NewRequest(http.MethodGet, "/api/servicios/pendientes", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"pickup":"a","dropoff":"b","clientFirstName":"Ana","clientLastName":"Ruiz","createdAt":"2025-03-01T10:00:00Z"}]`, rr.Body.String())
}

func TestRequestHandler_Pending_EmptyIsArray(t *testing.T) {
	t.Parallel()

	q := &stubQuery{pendingFn: func(context.Context) ([]domain.PendingRequest, error) { return nil, nil }}
	rr := httptest.NewRecorder()
	NewRequestHandler(nil, &stubDelivery{}, q).Pending(rr, httptest.NewRequest(http.MethodGet, "/api/servicios/pendientes", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestRequestHandler_Assign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"already assigned", apperr.ErrConflict, http.StatusConflict},
		{"not a courier", apperr.ErrInvalid, http.StatusBadRequest},
		{"commit failed", apperr.ErrTransaction, http.StatusInternalServerError},
		{"timeout", apperr.ErrTimeout, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &stubDelivery{
				assignFn: func(_ context.Context, requestID, courierID int64) (domain.AssignResult, error) {
					require.Equal(t, int64(5), requestID)
					require.Equal(t, int64(8), courierID)
					if tt.err != nil {
						return domain.AssignResult{}, tt.err
					}
					return domain.AssignResult{RequestID: 5, CourierID: 8, State: domain.StatePickingUp}, nil
				},
			}
			rr := httptest.NewRecorder()
			NewRequestHandler(nil, d, &stubQuery{}).
				Assign(rr, jsonPost("/api/servicios/asignar", `{"requestId":5,"courierId":8}`))

			assert.Equal(t, tt.status, rr.Code)
			if tt.err == nil {
				assert.JSONEq(t, `{"success":true,"message":"courier assigned"}`, rr.Body.String())
			}
		})
	}
}

func TestRequestHandler_ClientHistory(t *testing.T) {
	t.Parallel()

	name := "Luis Soto"
	created := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	q := &stubQuery{
		historyFn: func(_ context.Context, clientID int64) ([]domain.ClientRequest, error) {
			require.Equal(t, int64(3), clientID)
			return []domain.ClientRequest{
				{ID: 2, Pickup: "a", Dropoff: "b", State: domain.StateEnRoute, CourierName: &name, CreatedAt: created},
				{ID: 1, Pickup: "c", Dropoff: "d", State: domain.StatePending, CreatedAt: created},
			}, nil
		},
	}
	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/servicios/cliente/3", nil), "id", "3")
	NewRequestHandler(nil, &stubDelivery{}, q).ClientHistory(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"id":2,"pickup":"a","dropoff":"b","state":"en_route","courierName":"Luis Soto","createdAt":"2025-03-02T09:30:00Z"},
		{"id":1,"pickup":"c","dropoff":"d","state":"pending","courierName":null,"createdAt":"2025-03-02T09:30:00Z"}
	]`, rr.Body.String())
}

func TestRequestHandler_ClientHistory_InvalidID(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/servicios/cliente/x", nil), "id", "x")
	NewRequestHandler(nil, &stubDelivery{}, &stubQuery{}).ClientHistory(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestHandler_ClientHistory_Ownership(t *testing.T) {
	t.Parallel()

	q := &stubQuery{historyFn: func(context.Context, int64) ([]domain.ClientRequest, error) { return nil, nil }}
	h := NewRequestHandler(nil, &stubDelivery{}, q)

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/servicios/cliente/3", nil), "id", "3")
	h.ClientHistory(rr, withClaims(req, 4, domain.RoleClient))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.ClientHistory(rr, withClaims(req, 1, domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestHandler_CourierActive(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	q := &stubQuery{
		activeFn: func(_ context.Context, courierID int64) (*domain.CourierRequest, error) {
			if courierID == 8 {
				return &domain.CourierRequest{ID: 5, Pickup: "a", Dropoff: "b", State: domain.StatePickingUp, ClientFirstName: "Ana", ClientLastName: "Ruiz", CreatedAt: created}, nil
			}
			return nil, nil
		},
	}
	h := NewRequestHandler(nil, &stubDelivery{}, q)

	rr := httptest.NewRecorder()
	h.CourierActive(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/servicios/motorizado/8", nil), "id", "8"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":5,"pickup":"a","dropoff":"b","state":"picking_up","clientFirstName":"Ana","clientLastName":"Ruiz","createdAt":"2025-03-02T09:30:00Z"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.CourierActive(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/servicios/motorizado/9", nil), "id", "9"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))
}

func TestRequestHandler_UpdateState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		newState   string
		wantTarget domain.RequestState
		err        error
		status     int
	}{
		{name: "delivered", newState: "delivered", wantTarget: domain.StateDelivered, status: http.StatusOK},
		{name: "legacy alias", newState: "en camino", wantTarget: domain.StateEnRoute, status: http.StatusOK},
		{name: "pending is not a target", newState: "pending", status: http.StatusBadRequest},
		{name: "garbage", newState: "teleported", status: http.StatusBadRequest},
		{name: "unknown request", newState: "en_route", wantTarget: domain.StateEnRoute, err: apperr.ErrNotFound, status: http.StatusNotFound},
		{name: "skipping a state", newState: "delivered", wantTarget: domain.StateDelivered, err: apperr.ErrConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &stubDelivery{
				transitionFn: func(_ context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error) {
					require.Equal(t, int64(5), requestID)
					require.Equal(t, int64(8), courierID)
					require.Equal(t, tt.wantTarget, target)
					if tt.err != nil {
						return domain.TransitionResult{}, tt.err
					}
					return domain.TransitionResult{
						RequestID:       5,
						CourierID:       8,
						State:           target,
						CourierReleased: target == domain.StateDelivered,
					}, nil
				},
			}
			rr := httptest.NewRecorder()
			body := `{"requestId":5,"courierId":8,"newState":"` + tt.newState + `"}`
			NewRequestHandler(nil, d, &stubQuery{}).UpdateState(rr, jsonPost("/api/servicios/actualizar", body))

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestRequestHandler_UpdateState_ResponseBody(t *testing.T) {
	t.Parallel()

	d := &stubDelivery{
		transitionFn: func(_ context.Context, _, _ int64, target domain.RequestState) (domain.TransitionResult, error) {
			return domain.TransitionResult{RequestID: 5, CourierID: 8, State: target, CourierReleased: true}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewRequestHandler(nil, d, &stubQuery{}).
		UpdateState(rr, jsonPost("/api/servicios/actualizar", `{"requestId":5,"courierId":8,"newState":"entregado"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"state updated","state":"delivered","courierReleased":true}`, rr.Body.String())
}

func TestRequestHandler_UpdateState_OtherCourierForbidden(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := withClaims(jsonPost("/api/servicios/actualizar", `{"requestId":5,"courierId":8,"newState":"en_route"}`), 9, domain.RoleCourier)
	NewRequestHandler(nil, &stubDelivery{}, &stubQuery{}).UpdateState(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
