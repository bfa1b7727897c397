package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"homeserve/config"
	"homeserve/models"
	"homeserve/services/notification"
	"homeserve/services/tasks"

	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker in the background. It delivers scheduled
// booking reminders and post-payment receipts.
func InitWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))
	mux.HandleFunc(tasks.TypeSendReceipt, handleReceiptTask(notifSvc))

	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"reminderId": p.ReminderID,
			"fireDate":   p.FireDate,
		}

		var err error
		switch p.Target {
		case "user":
			err = notifSvc.SendUserPush(ctx, p.ID, p.Title, p.Body, data)
		case "provider":
			err = notifSvc.SendProviderPush(ctx, p.ID, p.Title, p.Body, data)
		default:
			log.Printf("[ReminderHandler] Unknown target type: %s", p.Target)
			return nil
		}

		if err != nil {
			log.Printf("[ReminderHandler] Failed to send notification: %v", err)
		}
		return err
	}
}

func handleReceiptTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReceiptPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReceiptHandler] Invalid payload: %v", err)
			return err
		}

		body := fmt.Sprintf("Payment of %.2f %s received via %s.", p.Amount, p.Currency, p.Method)
		data := map[string]string{"invoiceId": p.InvoiceID}

		if err := notifSvc.SendUserPush(ctx, p.UserID, "Payment receipt", body, data); err != nil {
			log.Printf("[ReceiptHandler] Failed to send receipt: %v", err)
			return err
		}
		return nil
	}
}
