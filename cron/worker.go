package cron

import (
	"context"
	"log"
	"time"

	"slotwise/config"
	"slotwise/services/scheduling"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeSweepAutoComplete = "sweep:auto_complete"
	TypeSweepAutoNoShow   = "sweep:auto_no_show"
)

// InitSweepWorker runs the periodic sweeps in background. The scheduler
// enqueues a task per sweep on the configured cron spec and the worker
// executes it through the engine. Both sweeps are idempotent, so duplicate
// enqueues are safe.
func InitSweepWorker(engine *scheduling.Engine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSweepAutoComplete, handleSweepTask(engine, TypeSweepAutoComplete))
	mux.HandleFunc(TypeSweepAutoNoShow, handleSweepTask(engine, TypeSweepAutoNoShow))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	spec := config.AppConfig.SweepCronSpec
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeSweepAutoComplete, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register auto-complete sweep: %v", err)
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeSweepAutoNoShow, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register auto-no-show sweep: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[SweepWorker] starting sweep scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[SweepWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSweepTask(engine *scheduling.Engine, taskType string) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var (
			updated int64
			err     error
		)
		switch taskType {
		case TypeSweepAutoComplete:
			updated, err = engine.AutoComplete(ctx)
		case TypeSweepAutoNoShow:
			updated, err = engine.AutoNoShow(ctx)
		default:
			log.Printf("[SweepWorker] unknown task type: %s", taskType)
			return nil
		}
		if err != nil {
			log.Printf("[SweepWorker] %s failed: %v", taskType, err)
			return err
		}
		if updated > 0 {
			log.Printf("[SweepWorker] %s updated %d bookings", taskType, updated)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SweepWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
