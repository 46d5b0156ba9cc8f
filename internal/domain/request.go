package domain

import "time"

// DeliveryRequest - struct representing a client's delivery request.
type DeliveryRequest struct {
	ID        int64
	ClientID  int64
	Pickup    string
	Dropoff   string
	CourierID *int64
	State     RequestState
	CreatedAt time.Time
}

// NewRequest - fields required to file a delivery request.
type NewRequest struct {
	ClientID int64
	Pickup   string
	Dropoff  string
}

// AssignResult - struct representing the result of assigning a courier.
type AssignResult struct {
	RequestID int64
	CourierID int64
	State     RequestState
}

// TransitionResult - struct representing the result of a state update.
type TransitionResult struct {
	RequestID       int64
	CourierID       int64
	State           RequestState
	CourierReleased bool
}

// PendingRequest - a request waiting in the dispatch queue.
type PendingRequest struct {
	ID              int64
	Pickup          string
	Dropoff         string
	ClientFirstName string
	ClientLastName  string
	CreatedAt       time.Time
}

// ClientRequest - a request as seen in the owning client's history.
type ClientRequest struct {
	ID          int64
	Pickup      string
	Dropoff     string
	State       RequestState
	CourierName *string
	CreatedAt   time.Time
}

// CourierRequest - the request a courier is currently working on.
type CourierRequest struct {
	ID              int64
	Pickup          string
	Dropoff         string
	State           RequestState
	ClientFirstName string
	ClientLastName  string
	CreatedAt       time.Time
}
