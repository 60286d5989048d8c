package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateDoctorRequest struct {
	Name string `json:"name" validate:"omitempty,max=255"`
}

// Response DTOs

type DoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type DoctorPageResponse struct {
	Items []DoctorResponse `json:"items"`
	Total int64            `json:"total"`
}
