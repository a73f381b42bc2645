package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"tripdesk/config"
	productRepo "tripdesk/database/repository/product"
	"tripdesk/services/catalog"
)

const TypeProductRefresh = "product:refresh"

type refreshPayload struct {
	ProductID string `json:"product_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// RefreshQueue enqueues background product re-fetches. It implements
// catalog.RefreshEnqueuer.
type RefreshQueue struct {
	client *asynq.Client
}

func NewRefreshQueue() *RefreshQueue {
	return &RefreshQueue{client: asynq.NewClient(redisOpts())}
}

func (q *RefreshQueue) EnqueueProductRefresh(productID string) error {
	payload, err := json.Marshal(refreshPayload{ProductID: productID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeProductRefresh, payload)
	_, err = q.client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(time.Minute))
	return err
}

// InitRefreshWorker runs the async worker in background.
func InitRefreshWorker(catalogSvc catalog.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProductRefresh, handleRefreshTask(catalogSvc))

	go func() {
		log.Println("[RefreshWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RefreshWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RefreshWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// StartStaleScanner periodically re-enqueues products whose stored snapshot
// has aged past maxAge, so documents nobody reads still stay fresh.
func StartStaleScanner(repo productRepo.ProductRepository, queue *RefreshQueue, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			ids, err := repo.ListStale(context.Background(), maxAge, 100)
			if err != nil {
				log.Printf("[RefreshWorker] stale scan failed: %v", err)
				continue
			}
			for _, id := range ids {
				if err := queue.EnqueueProductRefresh(id); err != nil {
					log.Printf("[RefreshWorker] failed to enqueue stale product %s: %v", id, err)
				}
			}
		}
	}()
}

func handleRefreshTask(catalogSvc catalog.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p refreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RefreshWorker] invalid payload: %v", err)
			return err
		}

		if _, err := catalogSvc.RefreshProduct(ctx, p.ProductID); err != nil {
			log.Printf("[RefreshWorker] refresh of %s failed: %v", p.ProductID, err)
			return err
		}
		return nil
	}
}
