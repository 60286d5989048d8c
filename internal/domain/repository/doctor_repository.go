package repository

import (
	"context"

	"consultation-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Doctor, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
