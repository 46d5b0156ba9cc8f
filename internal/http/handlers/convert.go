package handlers

import (
	"fmt"
	"time"

	"delivery-coordinator/internal/domain"
)

func (r registerRequest) toModel() (domain.Registration, error) {
	out := domain.Registration{
		NationalID: r.NationalID,
		Phone:      r.Phone,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Password:   r.Password,
	}
	if r.BirthDate != nil {
		d, err := time.Parse(time.DateOnly, *r.BirthDate)
		if err != nil {
			return domain.Registration{}, fmt.Errorf("birth date: %w", err)
		}
		out.BirthDate = &d
	}
	return out, nil
}

func (r createUserRequest) toModel(role domain.Role) domain.UserDraft {
	return domain.UserDraft{
		Role:       role,
		NationalID: r.NationalID,
		Username:   r.Username,
		Email:      r.Email,
		Phone:      r.Phone,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Password:   r.Password,
	}
}

func pendingToResponse(list []domain.PendingRequest) []pendingRequestDTO {
	out := make([]pendingRequestDTO, 0, len(list))
	for _, p := range list {
		out = append(out, pendingRequestDTO{
			ID:              p.ID,
			Pickup:          p.Pickup,
			Dropoff:         p.Dropoff,
			ClientFirstName: p.ClientFirstName,
			ClientLastName:  p.ClientLastName,
			CreatedAt:       p.CreatedAt,
		})
	}
	return out
}

func historyToResponse(list []domain.ClientRequest) []clientRequestDTO {
	out := make([]clientRequestDTO, 0, len(list))
	for _, c := range list {
		out = append(out, clientRequestDTO{
			ID:          c.ID,
			Pickup:      c.Pickup,
			Dropoff:     c.Dropoff,
			State:       c.State,
			CourierName: c.CourierName,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out
}

func activeToResponse(c *domain.CourierRequest) *courierRequestDTO {
	if c == nil {
		return nil
	}
	return &courierRequestDTO{
		ID:              c.ID,
		Pickup:          c.Pickup,
		Dropoff:         c.Dropoff,
		State:           c.State,
		ClientFirstName: c.ClientFirstName,
		ClientLastName:  c.ClientLastName,
		CreatedAt:       c.CreatedAt,
	}
}

func couriersToResponse(list []domain.CourierSummary) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, courierDTO{
			ID:           c.ID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Availability: c.Availability,
		})
	}
	return out
}
