package dto

import (
	"time"

	"ecodash/internal/domains/reservation/model"
	"ecodash/shared/constant"
)

type CreateReservationRequest struct {
	SpaceID        string `json:"space_id"        validate:"required,max=64"`
	StartTimestamp string `json:"start_timestamp" validate:"required,instant"`
	EndTimestamp   string `json:"end_timestamp"   validate:"required,instant"`
}

type CreateReservationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ReservationResponse struct {
	ReservationID  string `json:"reservation_id"`
	UserID         string `json:"user_id,omitempty"`
	SpaceID        string `json:"space_id"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ReservationID = model.ID
	r.UserID = model.UserID
	r.SpaceID = model.SpaceID
	r.StartTimestamp = formatInstant(model.StartTimestamp)
	r.EndTimestamp = formatInstant(model.EndTimestamp)
	r.Status = model.Status
	r.CreatedAt = formatInstant(model.CreatedAt)
}

// WithoutOwner returns a copy that does not reveal who made the reservation.
func (r ReservationResponse) WithoutOwner() ReservationResponse {
	r.UserID = constant.Empty

	return r
}

func FromModels(models []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// WithoutOwners strips the owner from every reservation.
func WithoutOwners(reservations []ReservationResponse) []ReservationResponse {
	res := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		res[i] = reservation.WithoutOwner()
	}

	return res
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return t.UTC().Format(constant.DateFormat)
}
