package dto

import (
	"time"

	"ecodash/internal/domains/reservation/model"
	"ecodash/shared/constant"
)

const (
	EventReservationCreated = "reservation.created"
	EventReservationDeleted = "reservation.deleted"
)

// Event is published whenever a reservation is created or deleted.
type Event struct {
	Event          string `json:"event"`
	ReservationID  string `json:"reservation_id"`
	UserID         string `json:"user_id"`
	SpaceID        string `json:"space_id"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	OccurredAt     string `json:"occurred_at"`
}

func NewEvent(event string, reservation model.Reservation, occurredAt time.Time) Event {
	return Event{
		Event:          event,
		ReservationID:  reservation.ID,
		UserID:         reservation.UserID,
		SpaceID:        reservation.SpaceID,
		StartTimestamp: formatInstant(reservation.StartTimestamp),
		EndTimestamp:   formatInstant(reservation.EndTimestamp),
		OccurredAt:     occurredAt.UTC().Format(constant.DateFormat),
	}
}
