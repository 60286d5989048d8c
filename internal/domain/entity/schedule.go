package entity

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a booked consultation between one customer and one doctor
// at an exact instant. A doctor holds at most one schedule per instant,
// enforced both by the collision check in the usecase and by the
// uq_schedules_doctor_scheduled_at constraint in the database.
type Schedule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Objective   string    `gorm:"type:text;not null" json:"objective"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Schedule) TableName() string {
	return "schedules"
}
