package usecase

import (
	"context"

	"consultation-booking/internal/converter"
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// NotificationUsecase exposes the retained terminal failures for
// operator inspection. Reads go straight to the database: this is a
// low-traffic surface and operators want the current state, not a
// cached one.
type NotificationUsecase interface {
	ListFailures(ctx context.Context, skip, take int) (*dto.FailedNotificationPageResponse, error)
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) ListFailures(ctx context.Context, skip, take int) (*dto.FailedNotificationPageResponse, error) {
	var (
		items []dto.FailedNotificationResponse
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := u.notificationRepo.FindFailures(gctx, u.db, skip, take)
		if err != nil {
			u.log.Warnf("Failed to list notification failures: %+v", err)
			return err
		}
		items = converter.FailedNotificationsToResponses(found)
		return nil
	})

	g.Go(func() error {
		count, err := u.notificationRepo.CountFailures(gctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to count notification failures: %+v", err)
			return err
		}
		total = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.FailedNotificationPageResponse{
		Items: items,
		Total: total,
	}, nil
}
