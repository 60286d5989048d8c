package repository

import (
	"context"

	"consultation-booking/internal/domain/entity"
	domainRepo "consultation-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) RecordFailure(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error {
	return db.WithContext(ctx).Create(failure).Error
}

func (r *notificationRepository) FindFailures(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.FailedNotification, error) {
	var failures []entity.FailedNotification
	err := db.WithContext(ctx).
		Offset(skip).
		Limit(take).
		Order("failed_at DESC").
		Find(&failures).Error
	if err != nil {
		return nil, err
	}
	return failures, nil
}

func (r *notificationRepository) CountFailures(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.FailedNotification{}).Count(&count).Error
	return count, err
}
