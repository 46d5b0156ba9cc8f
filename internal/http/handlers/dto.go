package handlers

import (
	"time"

	"delivery-coordinator/internal/domain"
)

type registerRequest struct {
	NationalID string  `json:"nationalId" validate:"required,numeric"`
	Phone      string  `json:"phone"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	BirthDate  *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Password   string  `json:"password" validate:"required"`
}

type loginRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type loginResponse struct {
	Success   bool        `json:"success"`
	Role      domain.Role `json:"role"`
	Name      string      `json:"name"`
	UserID    int64       `json:"userId"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type createRequestRequest struct {
	ClientID int64  `json:"clientId" validate:"required,gt=0"`
	Pickup   string `json:"pickup" validate:"required"`
	Dropoff  string `json:"dropoff" validate:"required"`
}

type assignRequest struct {
	RequestID int64 `json:"requestId" validate:"required,gt=0"`
	CourierID int64 `json:"courierId" validate:"required,gt=0"`
}

type updateStateRequest struct {
	RequestID int64  `json:"requestId" validate:"required,gt=0"`
	CourierID int64  `json:"courierId" validate:"required,gt=0"`
	NewState  string `json:"newState" validate:"required"`
}

type createUserRequest struct {
	Role       string  `json:"role" validate:"required"`
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	NationalID *string `json:"nationalId,omitempty" validate:"omitempty,numeric"`
	Phone      string  `json:"phone"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Password   string  `json:"password" validate:"required"`
}

type createdResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type transitionResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	State           domain.RequestState `json:"state"`
	CourierReleased bool                `json:"courierReleased"`
}

type pendingRequestDTO struct {
	ID              int64     `json:"id"`
	Pickup          string    `json:"pickup"`
	Dropoff         string    `json:"dropoff"`
	ClientFirstName string    `json:"clientFirstName"`
	ClientLastName  string    `json:"clientLastName"`
	CreatedAt       time.Time `json:"createdAt"`
}

type clientRequestDTO struct {
	ID          int64               `json:"id"`
	Pickup      string              `json:"pickup"`
	Dropoff     string              `json:"dropoff"`
	State       domain.RequestState `json:"state"`
	CourierName *string             `json:"courierName"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type courierRequestDTO struct {
	ID              int64               `json:"id"`
	Pickup          string              `json:"pickup"`
	Dropoff         string              `json:"dropoff"`
	State           domain.RequestState `json:"state"`
	ClientFirstName string              `json:"clientFirstName"`
	ClientLastName  string              `json:"clientLastName"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type courierDTO struct {
	ID           int64               `json:"id"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Availability domain.Availability `json:"availability"`
}
