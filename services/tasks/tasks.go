package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"homeserve/config"
	"homeserve/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	TypeSendReceipt  = "receipt:send"
)

// Scheduler enqueues background pushes. Satisfied by AsynqScheduler in
// production and by fakes in tests.
type Scheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
	EnqueueReceipt(payload models.ReceiptPayload) error
}

// NewReminderTask builds an asynq task that fires at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewReceiptTask builds an asynq task delivered as soon as possible.
func NewReceiptTask(payload models.ReceiptPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendReceipt, b), nil
}

// AsynqScheduler is the production Scheduler backed by an asynq client.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler creates a Scheduler using the reminder queue Redis DB.
func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqScheduler{client: client}
}

// ScheduleReminder enqueues a reminder push for the given fire time.
func (s *AsynqScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}

// EnqueueReceipt enqueues a receipt push for immediate delivery.
func (s *AsynqScheduler) EnqueueReceipt(payload models.ReceiptPayload) error {
	task, err := NewReceiptTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build receipt task: %w", err)
	}
	if _, err := s.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue receipt task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
