package cron

import (
	"context"
	"log"
	"time"

	"spacebook/config"
	"spacebook/services/booking"

	"github.com/hibiken/asynq"
)

const TypeCompletionSweep = "booking:completion_sweep"

// InitCompletionWorker runs the async worker and its periodic schedule
// in the background. The sweep is the external time-driven transition
// source: ACCEPTED bookings past their end date become COMPLETED.
func InitCompletionWorker(svc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompletionSweep, handleCompletionSweep(svc))

	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the sweep task on the configured cron spec.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)

	spec := config.AppConfig.CompletionSweepSpec
	if spec == "" {
		spec = "@every 1h"
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeCompletionSweep, nil)); err != nil {
		log.Printf("[CompletionWorker] failed to register sweep schedule: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[CompletionWorker] scheduler stopped: %v", err)
	}
}

func handleCompletionSweep(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		completed, err := svc.CompleteElapsed(ctx)
		if err != nil {
			log.Printf("[CompletionSweep] sweep failed: %v", err)
			return err
		}
		if completed > 0 {
			log.Printf("[CompletionSweep] marked %d bookings completed", completed)
		}
		return nil
	}
}
