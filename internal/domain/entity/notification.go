package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job delivery policy: a job is attempted at most MaxEmailAttempts times
// with exponential backoff starting at EmailBackoffBase between attempts.
const (
	MaxEmailAttempts = 3
	EmailBackoffBase = 5 * time.Second
)

// EmailJob is the payload carried through the notification queue.
// Attempt counts deliveries already made; it travels with the message so
// redeliveries after a failure keep their history.
type EmailJob struct {
	ID      uuid.UUID `json:"id"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Attempt int       `json:"attempt"`
}

// FailedNotification is the terminal record of a job that exhausted its
// attempts. Retained for operator inspection, never requeued.
type FailedNotification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Recipient string    `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	Attempts  int       `gorm:"not null" json:"attempts"`
	Error     string    `gorm:"type:text;not null" json:"error"`
	FailedAt  time.Time `gorm:"autoCreateTime" json:"failed_at"`
}

func (FailedNotification) TableName() string {
	return "failed_notifications"
}
