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
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerEmailExists  = errors.New("email already exists")
	ErrCustomerHasSchedules = errors.New("customer still has schedules")
)

const customerCacheEntity = "customer"

type CustomerUsecase interface {
	Create(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	// List returns one page of customers together with the total count.
	// The page itself is served cache-aside; stale list entries expire
	// by TTL only.
	List(ctx context.Context, skip, take int) (*dto.CustomerPageResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
}

type customerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	customerRepo repository.CustomerRepository
	cache        cache.Store
}

func NewCustomerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	customerRepo repository.CustomerRepository,
	cacheStore cache.Store,
) CustomerUsecase {
	return &customerUsecase{
		db:           db,
		log:          log,
		customerRepo: customerRepo,
		cache:        cacheStore,
	}
}

func (u *customerUsecase) Create(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := u.customerRepo.Create(ctx, u.db, customer); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrCustomerEmailExists
		}
		u.log.Warnf("Failed to create customer: %+v", err)
		return nil, err
	}

	return converter.CustomerToResponse(customer), nil
}

// findByID is the shared cache-aside lookup. A cache miss falls through
// to the database; true absence is NotFound regardless of cache state.
func (u *customerUsecase) findByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	cacheKey := cache.EntityKey(customerCacheEntity, id.String())

	var cached entity.Customer
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	customer, err := u.customerRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find customer: %+v", err)
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if err := u.cache.Set(ctx, cacheKey, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (u *customerUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.CustomerToResponse(customer), nil
}

func (u *customerUsecase) List(ctx context.Context, skip, take int) (*dto.CustomerPageResponse, error) {
	type listParams struct {
		Skip int `json:"skip"`
		Take int `json:"take"`
	}
	cacheKey := cache.ListKey(customerCacheEntity, listParams{Skip: skip, Take: take})

	var customers []entity.Customer
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if u.cache.Get(gctx, cacheKey, &customers) {
			return nil
		}

		found, err := u.customerRepo.FindAll(gctx, u.db, skip, take)
		if err != nil {
			u.log.Warnf("Failed to list customers: %+v", err)
			return err
		}
		customers = found
		return u.cache.Set(gctx, cacheKey, customers)
	})

	var total int64
	g.Go(func() error {
		count, err := u.customerRepo.Count(gctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to count customers: %+v", err)
			return err
		}
		total = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.CustomerPageResponse{
		Items: converter.CustomersToResponses(customers),
		Total: total,
	}, nil
}

func (u *customerUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Email != "" {
		customer.Email = req.Email
	}

	if err := u.customerRepo.Update(ctx, u.db, customer); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrCustomerEmailExists
		}
		u.log.Warnf("Failed to update customer: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(customerCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.CustomerToResponse(customer), nil
}

func (u *customerUsecase) Delete(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.customerRepo.Delete(ctx, u.db, id); err != nil {
		if isForeignKeyError(err, "customer") {
			return nil, ErrCustomerHasSchedules
		}
		u.log.Warnf("Failed to delete customer: %+v", err)
		return nil, err
	}

	if err := u.cache.Delete(ctx, cache.EntityKey(customerCacheEntity, id.String())); err != nil {
		return nil, err
	}

	return converter.CustomerToResponse(customer), nil
}
