package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleFilter is a domain-level filter for querying schedules.
// Used by the repository layer to avoid coupling with delivery DTOs.
// From/To bound scheduled_at inclusively; nil means unbounded.
type ScheduleFilter struct {
	DoctorID   *uuid.UUID `json:"doctorId,omitempty"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}
