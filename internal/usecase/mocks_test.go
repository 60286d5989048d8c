package usecase

import (
	"context"
	"time"

	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/internal/infrastructure/queue"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// Hand-rolled mocks: each func field defaults to a zero-value result so
// tests only set the calls they care about.

type mockCustomerRepo struct {
	CreateFunc   func(ctx context.Context, db *gorm.DB, customer *entity.Customer) error
	FindByIDFunc func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error)
	FindAllFunc  func(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Customer, error)
	CountFunc    func(ctx context.Context, db *gorm.DB) (int64, error)
	UpdateFunc   func(ctx context.Context, db *gorm.DB, customer *entity.Customer) error
	DeleteFunc   func(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}

var _ repository.CustomerRepository = (*mockCustomerRepo)(nil)

func (m *mockCustomerRepo) Create(ctx context.Context, db *gorm.DB, customer *entity.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, db, customer)
	}
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, db, id)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Customer, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, db, skip, take)
	}
	return nil, nil
}

func (m *mockCustomerRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, db)
	}
	return 0, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, db *gorm.DB, customer *entity.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, db, customer)
	}
	return nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, db, id)
	}
	return nil
}

type mockDoctorRepo struct {
	CreateFunc   func(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByIDFunc func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAllFunc  func(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Doctor, error)
	CountFunc    func(ctx context.Context, db *gorm.DB) (int64, error)
	UpdateFunc   func(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	DeleteFunc   func(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}

var _ repository.DoctorRepository = (*mockDoctorRepo)(nil)

func (m *mockDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, db, doctor)
	}
	return nil
}

func (m *mockDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, db, id)
	}
	return nil, nil
}

func (m *mockDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.Doctor, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, db, skip, take)
	}
	return nil, nil
}

func (m *mockDoctorRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, db)
	}
	return 0, nil
}

func (m *mockDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, db, doctor)
	}
	return nil
}

func (m *mockDoctorRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, db, id)
	}
	return nil
}

type mockScheduleRepo struct {
	CreateFunc                func(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error
	FindByIDFunc              func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error)
	FindByIDWithRelationsFunc func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error)
	FindAllFunc               func(ctx context.Context, db *gorm.DB, skip, take int, filter *entity.ScheduleFilter) ([]entity.Schedule, error)
	CountFunc                 func(ctx context.Context, db *gorm.DB, filter *entity.ScheduleFilter) (int64, error)
	ExistsAtFunc              func(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error)
	UpdateFunc                func(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error
	DeleteFunc                func(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}

var _ repository.ScheduleRepository = (*mockScheduleRepo)(nil)

func (m *mockScheduleRepo) Create(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, db, schedule)
	}
	return nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, db, id)
	}
	return nil, nil
}

func (m *mockScheduleRepo) FindByIDWithRelations(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Schedule, error) {
	if m.FindByIDWithRelationsFunc != nil {
		return m.FindByIDWithRelationsFunc(ctx, db, id)
	}
	return nil, nil
}

func (m *mockScheduleRepo) FindAll(ctx context.Context, db *gorm.DB, skip, take int, filter *entity.ScheduleFilter) ([]entity.Schedule, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, db, skip, take, filter)
	}
	return nil, nil
}

func (m *mockScheduleRepo) Count(ctx context.Context, db *gorm.DB, filter *entity.ScheduleFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, db, filter)
	}
	return 0, nil
}

func (m *mockScheduleRepo) ExistsAt(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	if m.ExistsAtFunc != nil {
		return m.ExistsAtFunc(ctx, db, doctorID, at, excludeID)
	}
	return false, nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, db *gorm.DB, schedule *entity.Schedule) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, db, schedule)
	}
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, db, id)
	}
	return nil
}

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, db, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, db, email)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, db, id)
	}
	return nil, nil
}

// mockCache records Set calls and serves canned Get hits. The zero value
// behaves like an empty, always-available cache.
type mockCache struct {
	GetFunc     func(ctx context.Context, key string, dest interface{}) bool
	SetFunc     func(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error
	DeleteFunc  func(ctx context.Context, key string) error
	SetKeys     []string
	DeletedKeys []string
}

var _ cache.Store = (*mockCache)(nil)

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return false
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error {
	m.SetKeys = append(m.SetKeys, key)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl...)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.DeletedKeys = append(m.DeletedKeys, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

type mockQueue struct {
	PublishFunc          func(ctx context.Context, message interface{}) error
	PublishWithDelayFunc func(ctx context.Context, message interface{}, delay time.Duration) error
	Published            []interface{}
}

var _ queue.Queue = (*mockQueue)(nil)

func (m *mockQueue) Publish(ctx context.Context, message interface{}) error {
	m.Published = append(m.Published, message)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, message)
	}
	return nil
}

func (m *mockQueue) PublishWithDelay(ctx context.Context, message interface{}, delay time.Duration) error {
	if m.PublishWithDelayFunc != nil {
		return m.PublishWithDelayFunc(ctx, message, delay)
	}
	return nil
}

func (m *mockQueue) Consume(ctx context.Context, prefetch int) (<-chan amqp.Delivery, error) {
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func (m *mockQueue) Close() error {
	return nil
}

type mockNotificationRepo struct {
	RecordFailureFunc func(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error
	FindFailuresFunc  func(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.FailedNotification, error)
	CountFailuresFunc func(ctx context.Context, db *gorm.DB) (int64, error)
}

var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) RecordFailure(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, db, failure)
	}
	return nil
}

func (m *mockNotificationRepo) FindFailures(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.FailedNotification, error) {
	if m.FindFailuresFunc != nil {
		return m.FindFailuresFunc(ctx, db, skip, take)
	}
	return nil, nil
}

func (m *mockNotificationRepo) CountFailures(ctx context.Context, db *gorm.DB) (int64, error) {
	if m.CountFailuresFunc != nil {
		return m.CountFailuresFunc(ctx, db)
	}
	return 0, nil
}
