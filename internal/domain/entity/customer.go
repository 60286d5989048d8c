package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the person a consultation is booked for. Email is unique.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Schedules []Schedule `gorm:"foreignKey:CustomerID" json:"schedules,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
