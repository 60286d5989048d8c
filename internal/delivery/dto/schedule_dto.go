package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScheduleRequest struct {
	Objective   string    `json:"objective" validate:"required"`
	CustomerID  uuid.UUID `json:"customer_id" validate:"required"`
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateScheduleRequest struct {
	Objective   string     `json:"objective" validate:"omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at" validate:"omitempty"`
}

// ListSchedulesQuery carries pagination plus the optional filters of the
// list endpoint. From/To are inclusive bounds on scheduled_at.
type ListSchedulesQuery struct {
	Skip       int        `json:"skip"`
	Take       int        `json:"take"`
	DoctorID   *uuid.UUID `json:"doctor_id,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}

// Response DTOs

type ScheduleResponse struct {
	ID          uuid.UUID         `json:"id"`
	Objective   string            `json:"objective"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Customer    *CustomerResponse `json:"customer,omitempty"`
	Doctor      *DoctorResponse   `json:"doctor,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type SchedulePageResponse struct {
	Items []ScheduleResponse `json:"items"`
	Total int64              `json:"total"`
}
