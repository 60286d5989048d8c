package repository

import (
	"context"
	"time"

	"consultation-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error)
	// FindByIDWithRelations eagerly loads the customer and doctor rows.
	FindByIDWithRelations(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error)
	FindAll(ctx context.Context, db *gorm.DB, skip, take int, filter *entity.ScheduleFilter) ([]entity.Schedule, error)
	Count(ctx context.Context, db *gorm.DB, filter *entity.ScheduleFilter) (int64, error)
	// ExistsAt reports whether the doctor already holds a schedule at the
	// exact instant, optionally excluding one record (the one being updated).
	ExistsAt(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
