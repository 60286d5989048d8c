package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultation-booking/internal/converter"
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/internal/infrastructure/queue"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleConflict = errors.New("doctor already has a schedule at this time")
)

const (
	scheduleCacheEntity  = "schedule"
	scheduleMailSubject  = "Appointment Scheduled"
	scheduleUniqueConstr = "uq_schedules_doctor_scheduled_at"
)

type ScheduleUsecase interface {
	// Create books a consultation: both referenced entities must exist
	// (checked concurrently), the doctor must be free at the exact
	// instant, and exactly one notification job is enqueued after the
	// booking is persisted, before the call returns.
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error)
	// List serves one filtered page cache-aside. The cache key covers
	// the full parameter set, so every filter/page combination is its
	// own entry; writes do not invalidate list entries, they expire by
	// TTL only.
	List(ctx context.Context, query *dto.ListSchedulesQuery) (*dto.SchedulePageResponse, error)
	Count(ctx context.Context, filter *entity.ScheduleFilter) (int64, error)
	// Update never re-sends the notification.
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error)
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	customerRepo repository.CustomerRepository
	doctorRepo   repository.DoctorRepository
	cache        cache.Store
	emailQueue   queue.Queue
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	customerRepo repository.CustomerRepository,
	doctorRepo repository.DoctorRepository,
	cacheStore cache.Store,
	emailQueue queue.Queue,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		customerRepo: customerRepo,
		doctorRepo:   doctorRepo,
		cache:        cacheStore,
		emailQueue:   emailQueue,
	}
}

// validateEntities checks that both referenced entities exist. The two
// lookups run concurrently; both must pass.
func (u *scheduleUsecase) validateEntities(ctx context.Context, customerID, doctorID uuid.UUID) (*entity.Customer, *entity.Doctor, error) {
	var (
		customer *entity.Customer
		doctor   *entity.Doctor
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := u.customerRepo.FindByID(gctx, u.db, customerID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrCustomerNotFound
		}
		customer = found
		return nil
	})

	g.Go(func() error {
		found, err := u.doctorRepo.FindByID(gctx, u.db, doctorID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrDoctorNotFound
		}
		doctor = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return customer, doctor, nil
}

// ensureNoCollision rejects a booking when the doctor already holds a
// schedule at the exact instant. Equality only, not interval overlap.
// This read-then-act check is racy on its own; the composite unique
// constraint on (doctor_id, scheduled_at) closes the window, and a
// violation from the insert is mapped to the same Conflict error.
func (u *scheduleUsecase) ensureNoCollision(ctx context.Context, doctorID uuid.UUID, at time.Time, excludeID *uuid.UUID) error {
	exists, err := u.scheduleRepo.ExistsAt(ctx, u.db, doctorID, at, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check schedule collision: %+v", err)
		return err
	}
	if exists {
		return ErrScheduleConflict
	}
	return nil
}

func (u *scheduleUsecase) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	customer, doctor, err := u.validateEntities(ctx, req.CustomerID, req.DoctorID)
	if err != nil {
		if !errors.Is(err, ErrCustomerNotFound) && !errors.Is(err, ErrDoctorNotFound) {
			u.log.Warnf("Failed to validate schedule references: %+v", err)
		}
		return nil, err
	}

	if err := u.ensureNoCollision(ctx, req.DoctorID, req.ScheduledAt, nil); err != nil {
		return nil, err
	}

	schedule := &entity.Schedule{
		Objective:   req.Objective,
		CustomerID:  req.CustomerID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
	}

	if err := u.scheduleRepo.Create(ctx, u.db, schedule); err != nil {
		if isDuplicateKeyError(err, scheduleUniqueConstr) {
			return nil, ErrScheduleConflict
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	schedule.Customer = *customer
	schedule.Doctor = *doctor

	job := entity.EmailJob{
		ID:      uuid.New(),
		To:      customer.Email,
		Subject: scheduleMailSubject,
		Body: fmt.Sprintf(
			"Your appointment with Dr. %s is scheduled at %s",
			doctor.Name,
			schedule.ScheduledAt.Format(time.RFC3339),
		),
		Attempt: 0,
	}

	if err := u.emailQueue.Publish(ctx, job); err != nil {
		u.log.Warnf("Failed to enqueue schedule notification: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) findByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	cacheKey := cache.EntityKey(scheduleCacheEntity, id.String())

	var cached entity.Schedule
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	schedule, err := u.scheduleRepo.FindByIDWithRelations(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if err := u.cache.Set(ctx, cacheKey, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (u *scheduleUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) List(ctx context.Context, query *dto.ListSchedulesQuery) (*dto.SchedulePageResponse, error) {
	filter := &entity.ScheduleFilter{
		DoctorID:   query.DoctorID,
		CustomerID: query.CustomerID,
		From:       query.From,
		To:         query.To,
	}

	cacheKey := cache.ListKey(scheduleCacheEntity, query)

	var schedules []entity.Schedule
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if u.cache.Get(gctx, cacheKey, &schedules) {
			return nil
		}

		found, err := u.scheduleRepo.FindAll(gctx, u.db, query.Skip, query.Take, filter)
		if err != nil {
			u.log.Warnf("Failed to list schedules: %+v", err)
			return err
		}
		schedules = found
		return u.cache.Set(gctx, cacheKey, schedules)
	})

	var total int64
	g.Go(func() error {
		count, err := u.Count(gctx, filter)
		if err != nil {
			return err
		}
		total = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.SchedulePageResponse{
		Items: converter.SchedulesToResponses(schedules),
		Total: total,
	}, nil
}

func (u *scheduleUsecase) Count(ctx context.Context, filter *entity.ScheduleFilter) (int64, error) {
	count, err := u.scheduleRepo.Count(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to count schedules: %+v", err)
		return 0, err
	}
	return count, nil
}

func (u *scheduleUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if req.ScheduledAt != nil {
		if err := u.ensureNoCollision(ctx, schedule.DoctorID, *req.ScheduledAt, &schedule.ID); err != nil {
			return nil, err
		}
		schedule.ScheduledAt = *req.ScheduledAt
	}
	if req.Objective != "" {
		schedule.Objective = req.Objective
	}

	if err := u.scheduleRepo.Update(ctx, u.db, schedule); err != nil {
		if isDuplicateKeyError(err, scheduleUniqueConstr) {
			return nil, ErrScheduleConflict
		}
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(scheduleCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) Delete(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByIDWithRelations(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if err := u.scheduleRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(scheduleCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}
