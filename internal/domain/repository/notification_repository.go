package repository

import (
	"context"

	"consultation-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	RecordFailure(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error
	FindFailures(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.FailedNotification, error)
	CountFailures(ctx context.Context, db *gorm.DB) (int64, error)
}
