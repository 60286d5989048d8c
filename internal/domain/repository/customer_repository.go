package repository

import (
	"context"

	"consultation-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, db *gorm.DB, customer *entity.Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error)
	FindAll(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Customer, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, customer *entity.Customer) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
