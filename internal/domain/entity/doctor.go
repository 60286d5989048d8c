package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a consulting doctor.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Schedules []Schedule `gorm:"foreignKey:DoctorID" json:"schedules,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
