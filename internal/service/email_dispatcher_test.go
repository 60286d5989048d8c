package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"consultation-booking/internal/domain/entity"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDispatcher(mailer *mockMailer, q *mockQueue, repo *mockNotificationRepo) *Dispatcher {
	return NewDispatcher(nil, testLogger(), q, mailer, repo)
}

func jobBody(t *testing.T, job entity.EmailJob) []byte {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return body
}

func TestHandleDeliversJob(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			assert.Equal(t, "alice@example.com", to)
			assert.Equal(t, "Appointment Scheduled", subject)
			return nil
		},
	}
	q := &mockQueue{}
	repo := &mockNotificationRepo{}
	d := newTestDispatcher(mailer, q, repo)

	job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com", Subject: "Appointment Scheduled", Body: "see you soon"}
	require.NoError(t, d.Handle(context.Background(), jobBody(t, job)))

	assert.Len(t, mailer.Sent, 1)
	assert.Empty(t, q.Delayed)
	assert.Empty(t, repo.Failures)
}

func TestHandleRepublishesWithExponentialBackoff(t *testing.T) {
	tests := []struct {
		name      string
		attempt   int
		wantDelay time.Duration
	}{
		{"first failure waits the base delay", 0, 5 * time.Second},
		{"second failure doubles it", 1, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &mockMailer{
				SendFunc: func(to, subject, body string) error {
					return errors.New("smtp timeout")
				},
			}
			q := &mockQueue{}
			repo := &mockNotificationRepo{}
			d := newTestDispatcher(mailer, q, repo)

			job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com", Attempt: tt.attempt}
			require.NoError(t, d.Handle(context.Background(), jobBody(t, job)))

			require.Len(t, q.Delayed, 1)
			assert.Equal(t, tt.wantDelay, q.Delayed[0].Delay)

			// The republished job carries the incremented attempt count.
			republished, ok := q.Delayed[0].Message.(entity.EmailJob)
			require.True(t, ok)
			assert.Equal(t, tt.attempt+1, republished.Attempt)
			assert.Empty(t, repo.Failures)
		})
	}
}

func TestHandleRetainsJobAfterFinalAttempt(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			return errors.New("mailbox unavailable")
		},
	}
	q := &mockQueue{}
	repo := &mockNotificationRepo{}
	d := newTestDispatcher(mailer, q, repo)

	job := entity.EmailJob{
		ID:      uuid.New(),
		To:      "alice@example.com",
		Subject: "Appointment Scheduled",
		Body:    "see you soon",
		Attempt: entity.MaxEmailAttempts - 1,
	}
	require.NoError(t, d.Handle(context.Background(), jobBody(t, job)))

	// Exhausted jobs are retained, never requeued.
	assert.Empty(t, q.Delayed)
	require.Len(t, repo.Failures, 1)

	failure := repo.Failures[0]
	assert.Equal(t, job.ID, failure.JobID)
	assert.Equal(t, "alice@example.com", failure.Recipient)
	assert.Equal(t, entity.MaxEmailAttempts, failure.Attempts)
	assert.Equal(t, "mailbox unavailable", failure.Error)
}

func TestHandleRetainFailureSurfaces(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			return errors.New("mailbox unavailable")
		},
	}
	repo := &mockNotificationRepo{
		RecordFailureFunc: func(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error {
			return errors.New("db down")
		},
	}
	d := newTestDispatcher(mailer, &mockQueue{}, repo)

	job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com", Attempt: entity.MaxEmailAttempts - 1}
	err := d.Handle(context.Background(), jobBody(t, job))
	require.Error(t, err)
	assert.ErrorIs(t, err, errRedeliver)
	assert.ErrorContains(t, err, "db down")
}

func TestHandleMarksFailedRepublishForRedelivery(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			return errors.New("smtp timeout")
		},
	}
	q := &mockQueue{
		PublishWithDelayFunc: func(ctx context.Context, message interface{}, delay time.Duration) error {
			return errors.New("broker unavailable")
		},
	}
	d := newTestDispatcher(mailer, q, &mockNotificationRepo{})

	job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com"}
	err := d.Handle(context.Background(), jobBody(t, job))
	require.Error(t, err)
	assert.ErrorIs(t, err, errRedeliver)
}

// runOneDelivery drains Run over a single delivery and returns once the
// workers have exited.
func runOneDelivery(t *testing.T, d *Dispatcher, q *mockQueue, delivery amqp.Delivery) {
	t.Helper()
	ch := make(chan amqp.Delivery, 1)
	ch <- delivery
	close(ch)
	q.Deliveries = ch
	require.NoError(t, d.Run(context.Background()))
}

func TestRunReturnsJobToBrokerWhenRetryCannotBeQueued(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			return errors.New("smtp timeout")
		},
	}
	q := &mockQueue{
		PublishWithDelayFunc: func(ctx context.Context, message interface{}, delay time.Duration) error {
			return errors.New("broker unavailable")
		},
	}
	repo := &mockNotificationRepo{}
	d := newTestDispatcher(mailer, q, repo)

	acker := &mockAcknowledger{}
	job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com"}
	runOneDelivery(t, d, q, amqp.Delivery{Acknowledger: acker, Body: jobBody(t, job)})

	// The broker keeps the only copy, so the delivery must go back to
	// it rather than be acked away.
	assert.Equal(t, 0, acker.Acks)
	assert.Equal(t, 1, acker.Nacks)
	assert.True(t, acker.Requeued)
	assert.Empty(t, repo.Failures)
}

func TestRunReturnsJobToBrokerWhenRetentionFails(t *testing.T) {
	mailer := &mockMailer{
		SendFunc: func(to, subject, body string) error {
			return errors.New("mailbox unavailable")
		},
	}
	repo := &mockNotificationRepo{
		RecordFailureFunc: func(ctx context.Context, db *gorm.DB, failure *entity.FailedNotification) error {
			return errors.New("db down")
		},
	}
	q := &mockQueue{}
	d := newTestDispatcher(mailer, q, repo)

	acker := &mockAcknowledger{}
	job := entity.EmailJob{ID: uuid.New(), To: "alice@example.com", Attempt: entity.MaxEmailAttempts - 1}
	runOneDelivery(t, d, q, amqp.Delivery{Acknowledger: acker, Body: jobBody(t, job)})

	assert.Equal(t, 0, acker.Acks)
	assert.Equal(t, 1, acker.Nacks)
	assert.True(t, acker.Requeued)
}

func TestRunAcksDeliveredAndMalformedJobs(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"successful delivery", nil},
		{"malformed payload never redelivered", []byte("not json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &mockQueue{}
			d := newTestDispatcher(&mockMailer{}, q, &mockNotificationRepo{})

			body := tt.body
			if body == nil {
				body = jobBody(t, entity.EmailJob{ID: uuid.New(), To: "alice@example.com"})
			}

			acker := &mockAcknowledger{}
			runOneDelivery(t, d, q, amqp.Delivery{Acknowledger: acker, Body: body})

			assert.Equal(t, 1, acker.Acks)
			assert.Equal(t, 0, acker.Nacks)
		})
	}
}

func TestHandleRejectsMalformedPayload(t *testing.T) {
	d := newTestDispatcher(&mockMailer{}, &mockQueue{}, &mockNotificationRepo{})
	assert.Error(t, d.Handle(context.Background(), []byte("not json")))
}
