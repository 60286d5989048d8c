package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type FailedNotificationResponse struct {
	ID        int64     `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Attempts  int       `json:"attempts"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failed_at"`
}

type FailedNotificationPageResponse struct {
	Items []FailedNotificationResponse `json:"items"`
	Total int64                        `json:"total"`
}
