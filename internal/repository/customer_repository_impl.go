package repository

import (
	"context"
	"errors"

	"consultation-booking/internal/domain/entity"
	domainRepo "consultation-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct{}

func NewCustomerRepository() domainRepo.CustomerRepository {
	return &customerRepository{}
}

func (r *customerRepository) Create(ctx context.Context, db *gorm.DB, customer *entity.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := db.WithContext(ctx).
		Offset(skip).
		Limit(take).
		Order("created_at DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Customer{}).Count(&count).Error
	return count, err
}

func (r *customerRepository) Update(ctx context.Context, db *gorm.DB, customer *entity.Customer) error {
	return db.WithContext(ctx).Omit("Schedules").Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Customer{}).Error
}
