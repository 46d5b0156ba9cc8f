package domain

import (
	"strings"
	"unicode"
)

type (
	// Role represents the role of a platform user.
	Role string
	// Availability represents whether a courier can take a new request.
	Availability string
	// RequestState represents the lifecycle state of a delivery request.
	RequestState string
)

// List of possible user roles
const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"
)

// List of possible courier availabilities
const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
)

// List of possible request states, in lifecycle order
const (
	StatePending   RequestState = "pending"
	StatePickingUp RequestState = "picking_up"
	StateEnRoute   RequestState = "en_route"
	StateDelivered RequestState = "delivered"
)

var allowedRoles = [...]Role{RoleClient, RoleCourier, RoleAdmin}

var allowedAvailabilities = [...]Availability{AvailabilityAvailable, AvailabilityBusy}

var lifecycle = [...]RequestState{StatePending, StatePickingUp, StateEnRoute, StateDelivered}

// Legacy spellings still sent by older clients.
var (
	roleAliases = map[string]Role{
		"cliente":       RoleClient,
		"motorizado":    RoleCourier,
		"repartidor":    RoleCourier,
		"administrador": RoleAdmin,
	}
	availabilityAliases = map[string]Availability{
		"disponible": AvailabilityAvailable,
		"ocupado":    AvailabilityBusy,
	}
	stateAliases = map[string]RequestState{
		"pendiente":  StatePending,
		"recogiendo": StatePickingUp,
		"en camino":  StateEnRoute,
		"entregado":  StateDelivered,
	}
)

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Valid checks if the Availability is valid
func (a Availability) Valid() bool {
	for _, v := range allowedAvailabilities {
		if a == v {
			return true
		}
	}
	return false
}

// Valid checks if the RequestState is valid
func (s RequestState) Valid() bool {
	return s.position() >= 0
}

// Terminal reports whether no transition may leave s.
func (s RequestState) Terminal() bool {
	return s == StateDelivered
}

// TransitionTarget reports whether s may be requested as the target of a state update.
// Pending is only ever the initial state.
func (s RequestState) TransitionTarget() bool {
	return s.Valid() && s != StatePending
}

// Next returns the immediate successor of s, or false for the terminal state.
func (s RequestState) Next() (RequestState, bool) {
	i := s.position()
	if i < 0 || i+1 >= len(lifecycle) {
		return "", false
	}
	return lifecycle[i+1], true
}

func (s RequestState) position() int {
	for i, v := range lifecycle {
		if s == v {
			return i
		}
	}
	return -1
}

// ParseRole accepts canonical role codes and their legacy aliases.
func ParseRole(s string) (Role, bool) {
	key := normalize(s)
	if r := Role(key); r.Valid() {
		return r, true
	}
	r, ok := roleAliases[key]
	return r, ok
}

// ParseAvailability accepts canonical availability codes and their legacy aliases.
func ParseAvailability(s string) (Availability, bool) {
	key := normalize(s)
	if a := Availability(key); a.Valid() {
		return a, true
	}
	a, ok := availabilityAliases[key]
	return a, ok
}

// ParseRequestState accepts canonical state codes and their legacy aliases.
func ParseRequestState(s string) (RequestState, bool) {
	key := normalize(s)
	if st := RequestState(strings.ReplaceAll(key, " ", "_")); st.Valid() {
		return st, true
	}
	st, ok := stateAliases[key]
	return st, ok
}

// ParseTransitionTarget is ParseRequestState restricted to states a client may request.
func ParseTransitionTarget(s string) (RequestState, bool) {
	st, ok := ParseRequestState(s)
	if !ok || !st.TransitionTarget() {
		return "", false
	}
	return st, true
}

func normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), " ")
}
