package worker

// retry_cron.go
// Background goroutine that periodically moves failed alert jobs from the
// retry queue back onto the main queue for another delivery attempt.
// Uses the Circuit Breaker state to avoid hammering a downed SMTP relay.

import (
	"context"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues a batch of waiting retries. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, rdb, cb)
			}
		}
	}()
}

func processRetries(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cb.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	moved := 0
	for i := 0; i < retryBatchSize; i++ {
		// Check CB state before each move — it may have tripped mid-batch
		if cb.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			break
		}
		raw, err := rdb.RPop(ctx, RetryQueueAlerts).Result()
		if err != nil {
			break // queue drained or redis unavailable
		}
		if err := rdb.LPush(ctx, QueueAlerts, raw).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-enqueue job")
			break
		}
		moved++
	}

	if moved > 0 {
		log.Info().Int("count", moved).Msg("retry_cron: re-enqueued alert jobs")
	}
}
