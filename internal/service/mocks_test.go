package service

import (
	"context"
	"sync"
	"time"

	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/internal/infrastructure/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type mockCache struct {
	GetFunc func(ctx context.Context, key string, dest interface{}) bool
	SetFunc func(ctx context.Context, key string, value interface{}, ttl ...time.Duration) error
	SetKeys []string
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
	return nil
}

type mockMailer struct {
	SendFunc func(to, subject, body string) error
	Sent     []string
}

var _ Mailer = (*mockMailer)(nil)

func (m *mockMailer) Send(to, subject, body string) error {
	m.Sent = append(m.Sent, to)
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}

type delayedPublish struct {
	Message interface{}
	Delay   time.Duration
}

type mockQueue struct {
	PublishWithDelayFunc func(ctx context.Context, message interface{}, delay time.Duration) error
	Deliveries           <-chan amqp.Delivery
	Published            []interface{}
	Delayed              []delayedPublish
}

var _ queue.Queue = (*mockQueue)(nil)

func (m *mockQueue) Publish(ctx context.Context, message interface{}) error {
	m.Published = append(m.Published, message)
	return nil
}

func (m *mockQueue) PublishWithDelay(ctx context.Context, message interface{}, delay time.Duration) error {
	if m.PublishWithDelayFunc != nil {
		return m.PublishWithDelayFunc(ctx, message, delay)
	}
	m.Delayed = append(m.Delayed, delayedPublish{Message: message, Delay: delay})
	return nil
}

func (m *mockQueue) Consume(ctx context.Context, prefetch int) (<-chan amqp.Delivery, error) {
	if m.Deliveries != nil {
		return m.Deliveries, nil
	}
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func (m *mockQueue) Close() error {
	return nil
}

// mockAcknowledger records the settlement of each delivery so tests can
// assert whether a message was acked or returned to the broker.
type mockAcknowledger struct {
	mu       sync.Mutex
	Acks     int
	Nacks    int
	Requeued bool
}

var _ amqp.Acknowledger = (*mockAcknowledger)(nil)

func (m *mockAcknowledger) Ack(tag uint64, multiple bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acks++
	return nil
}

func (m *mockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Nacks++
	m.Requeued = requeue
	return nil
}

func (m *mockAcknowledger) Reject(tag uint64, requeue bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Nacks++
	m.Requeued = requeue
	return nil
}

type mockNotificationRepo struct {
	RecordFailureFunc func(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error
	Failures          []*entity.FailedNotification
}

var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) RecordFailure(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error {
	m.Failures = append(m.Failures, failure)
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, db, failure)
	}
	return nil
}

func (m *mockNotificationRepo) FindFailures(ctx context.Context, db *gorm.DB, skip, take int) ([]entity.FailedNotification, error) {
	return nil, nil
}

func (m *mockNotificationRepo) CountFailures(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(m.Failures)), nil
}
