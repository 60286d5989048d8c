package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/queue"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DispatcherConcurrency is the fixed worker pool size. Jobs are
// independent, so workers share nothing beyond the delivery channel.
const DispatcherConcurrency = 3

// errRedeliver marks failures where the broker still holds the only
// copy of the job: the retry republish or the terminal failure record
// could not be written. Run nacks these back for redelivery instead of
// acking, so the job is never dropped.
var errRedeliver = errors.New("redeliver email job")

func redeliverable(err error) error {
	return fmt.Errorf("%w: %v", errRedeliver, err)
}

// Dispatcher drains the email queue and performs deliveries. Each job
// gets at most entity.MaxEmailAttempts tries with exponential backoff;
// a job that exhausts them is retained as a FailedNotification row and
// reported through the log, never silently dropped.
type Dispatcher struct {
	db               *gorm.DB
	log              *logrus.Logger
	queue            queue.Queue
	mailer           Mailer
	notificationRepo repository.NotificationRepository
	concurrency      int
}

func NewDispatcher(
	db *gorm.DB,
	log *logrus.Logger,
	emailQueue queue.Queue,
	mailer Mailer,
	notificationRepo repository.NotificationRepository,
) *Dispatcher {
	return &Dispatcher{
		db:               db,
		log:              log,
		queue:            emailQueue,
		mailer:           mailer,
		notificationRepo: notificationRepo,
		concurrency:      DispatcherConcurrency,
	}
}

// Run blocks until ctx is cancelled and the workers have drained.
func (d *Dispatcher) Run(ctx context.Context) error {
	msgs, err := d.queue.Consume(ctx, d.concurrency)
	if err != nil {
		return err
	}

	d.log.Infof("Email dispatcher started with %d workers", d.concurrency)

	var wg sync.WaitGroup
	for i := 0; i < d.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-msgs:
					if !ok {
						return
					}
					if err := d.Handle(ctx, msg.Body); err != nil {
						d.log.Warnf("Failed to process email job: %+v", err)
						if errors.Is(err, errRedeliver) {
							msg.Nack(false, true)
							continue
						}
					}
					// Retries travel as fresh delayed messages, so a
					// handled delivery is acked even when the send failed.
					msg.Ack(false)
				}
			}
		}()
	}

	wg.Wait()
	return nil
}

// Handle performs a single delivery attempt for one queued job. Errors
// wrapping errRedeliver mean the broker must redeliver the message;
// anything else (a payload that can never succeed) is safe to ack.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var job entity.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return err
	}

	job.Attempt++

	if err := d.mailer.Send(job.To, job.Subject, job.Body); err != nil {
		if job.Attempt < entity.MaxEmailAttempts {
			delay := backoffDelay(job.Attempt)
			d.log.WithFields(logrus.Fields{
				"job_id":  job.ID,
				"attempt": job.Attempt,
				"delay":   delay,
			}).Warnf("Email delivery failed, retrying: %v", err)
			if err := d.queue.PublishWithDelay(ctx, job, delay); err != nil {
				return redeliverable(err)
			}
			return nil
		}
		return d.fail(ctx, &job, err)
	}

	d.log.WithField("job_id", job.ID).Info("Email job completed")
	return nil
}

// backoffDelay is exponential from the configured base: 5s after the
// first failed attempt, 10s after the second.
func backoffDelay(attempt int) time.Duration {
	return entity.EmailBackoffBase * time.Duration(1<<(attempt-1))
}

func (d *Dispatcher) fail(ctx context.Context, job *entity.EmailJob, sendErr error) error {
	failure := &entity.FailedNotification{
		JobID:     job.ID,
		Recipient: job.To,
		Subject:   job.Subject,
		Body:      job.Body,
		Attempts:  job.Attempt,
		Error:     sendErr.Error(),
	}

	if err := d.notificationRepo.RecordFailure(ctx, d.db, failure); err != nil {
		d.log.Errorf("Failed to record notification failure: %+v", err)
		return redeliverable(err)
	}

	d.log.WithFields(logrus.Fields{
		"job_id":    job.ID,
		"attempts":  job.Attempt,
		"recipient": job.To,
		"error":     sendErr.Error(),
	}).Error("Email delivery failed permanently")

	return nil
}
