package usecase

import (
	"context"
	"errors"

	"consultation-booking/internal/converter"
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDoctorHasSchedules = errors.New("doctor still has schedules")
)

const doctorCacheEntity = "doctor"

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	List(ctx context.Context, skip, take int) (*dto.DoctorPageResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	cache      cache.Store
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	cacheStore cache.Store,
) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		cache:      cacheStore,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		Name: req.Name,
	}

	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) findByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	cacheKey := cache.EntityKey(doctorCacheEntity, id.String())

	var cached entity.Doctor
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.cache.Set(ctx, cacheKey, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (u *doctorUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context, skip, take int) (*dto.DoctorPageResponse, error) {
	type listParams struct {
		Skip int `json:"skip"`
		Take int `json:"take"`
	}
	cacheKey := cache.ListKey(doctorCacheEntity, listParams{Skip: skip, Take: take})

	var doctors []entity.Doctor
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if u.cache.Get(gctx, cacheKey, &doctors) {
			return nil
		}

		found, err := u.doctorRepo.FindAll(gctx, u.db, skip, take)
		if err != nil {
			u.log.Warnf("Failed to list doctors: %+v", err)
			return err
		}
		doctors = found
		return u.cache.Set(gctx, cacheKey, doctors)
	})

	var total int64
	g.Go(func() error {
		count, err := u.doctorRepo.Count(gctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to count doctors: %+v", err)
			return err
		}
		total = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DoctorPageResponse{
		Items: converter.DoctorsToResponses(doctors),
		Total: total,
	}, nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}

	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(doctorCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.doctorRepo.Delete(ctx, u.db, id); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorHasSchedules
		}
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(doctorCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}
