package repository

import (
	"context"
	"errors"
	"time"

	"consultation-booking/internal/domain/entity"
	domainRepo "consultation-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) Create(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error {
	return db.WithContext(ctx).Omit("Customer", "Doctor").Create(schedule).Error
}

func (r *scheduleRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) FindByIDWithRelations(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := db.WithContext(ctx).
		Preload("Customer").
		Preload("Doctor").
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func applyScheduleFilter(query *gorm.DB, filter *entity.ScheduleFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at <= ?", *filter.To)
	}
	return query
}

func (r *scheduleRepository) FindAll(ctx context.Context, db *gorm.DB, skip, take int, filter *entity.ScheduleFilter) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	query := applyScheduleFilter(db.WithContext(ctx), filter)
	err := query.
		Preload("Customer").
		Preload("Doctor").
		Offset(skip).
		Limit(take).
		Order("scheduled_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) Count(ctx context.Context, db *gorm.DB, filter *entity.ScheduleFilter) (int64, error) {
	var count int64
	query := applyScheduleFilter(db.WithContext(ctx).Model(&entity.Schedule{}), filter)
	err := query.Count(&count).Error
	return count, err
}

func (r *scheduleRepository) ExistsAt(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	query := db.WithContext(ctx).
		Model(&entity.Schedule{}).
		Where("doctor_id = ? AND scheduled_at = ?", doctorID, at)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scheduleRepository) Update(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error {
	return db.WithContext(ctx).Omit("Customer", "Doctor").Save(schedule).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Schedule{}).Error
}
