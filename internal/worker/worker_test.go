package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/config"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/infra"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// openBreaker returns a CB already tripped open, so Execute fast-fails
// without ever touching the mailer.
func openBreaker() *infra.CircuitBreaker {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      time.Hour,
	})
	_ = cb.Execute(func() error { return errors.New("relay down") })
	return cb
}

func alertPayload() AlertJobPayload {
	return AlertJobPayload{
		ToEmail:      "supervisor@cleaning-office.local",
		EmployeeName: "Ahmed",
		PlaceName:    "Lobby",
		Score:        1.8,
		Date:         "2026-08-03",
	}
}

func TestDispatcher_EnqueueAlert(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	d := NewDispatcher(rdb)
	require.NoError(t, d.EnqueueAlert(ctx, alertPayload()))

	raw, err := rdb.RPop(ctx, QueueAlerts).Result()
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, "alert", job.Type)
	assert.Zero(t, job.Attempts)

	var payload AlertJobPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, "Ahmed", payload.EmployeeName)
	assert.InDelta(t, 1.8, payload.Score, 0.001)
}

func TestAlertWorker_FailedDeliveryGoesToRetryQueue(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	mailer := infra.NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: 2525})
	w := NewAlertWorker(mailer, openBreaker(), rdb)

	payload, _ := json.Marshal(alertPayload())
	w.Process(ctx, Job{Type: "alert", Payload: payload})

	raw, err := rdb.RPop(ctx, RetryQueueAlerts).Result()
	require.NoError(t, err)

	var retried Job
	require.NoError(t, json.Unmarshal([]byte(raw), &retried))
	assert.Equal(t, 1, retried.Attempts)

	n, err := DLQLength(ctx, rdb, QueueAlerts)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAlertWorker_ExhaustedJobGoesToDLQ(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	mailer := infra.NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: 2525})
	w := NewAlertWorker(mailer, openBreaker(), rdb)

	payload, _ := json.Marshal(alertPayload())
	w.Process(ctx, Job{Type: "alert", Payload: payload, Attempts: MaxAlertRetries - 1})

	n, err := DLQLength(ctx, rdb, QueueAlerts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	retryLen, err := rdb.LLen(ctx, RetryQueueAlerts).Result()
	require.NoError(t, err)
	assert.Zero(t, retryLen)

	raw, err := rdb.RPop(ctx, DLQPrefix+QueueAlerts).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, QueueAlerts, entry.OriginalQueue)
	assert.Equal(t, MaxAlertRetries, entry.Attempts)
}

func TestAlertWorker_SkipsBadJobs(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	mailer := infra.NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: 2525})
	w := NewAlertWorker(mailer, openBreaker(), rdb)

	w.Process(ctx, Job{Type: "alert", Payload: []byte("{broken")})

	empty, _ := json.Marshal(AlertJobPayload{})
	w.Process(ctx, Job{Type: "alert", Payload: empty})

	retryLen, err := rdb.LLen(ctx, RetryQueueAlerts).Result()
	require.NoError(t, err)
	assert.Zero(t, retryLen, "unparseable or addressless jobs are dropped, not retried")
}

func TestProcessRetries_MovesBatchBackToMainQueue(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	for i := 0; i < retryBatchSize+3; i++ {
		payload, _ := json.Marshal(alertPayload())
		encoded, _ := json.Marshal(Job{Type: "alert", Payload: payload, Attempts: 1})
		require.NoError(t, rdb.LPush(ctx, RetryQueueAlerts, encoded).Err())
	}

	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	processRetries(ctx, rdb, cb)

	mainLen, err := rdb.LLen(ctx, QueueAlerts).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(retryBatchSize), mainLen, "one batch per tick")

	retryLen, err := rdb.LLen(ctx, RetryQueueAlerts).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), retryLen)
}

func TestProcessRetries_SkipsWhileBreakerOpen(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	payload, _ := json.Marshal(alertPayload())
	encoded, _ := json.Marshal(Job{Type: "alert", Payload: payload, Attempts: 1})
	require.NoError(t, rdb.LPush(ctx, RetryQueueAlerts, encoded).Err())

	processRetries(ctx, rdb, openBreaker())

	mainLen, err := rdb.LLen(ctx, QueueAlerts).Result()
	require.NoError(t, err)
	assert.Zero(t, mainLen)

	retryLen, err := rdb.LLen(ctx, RetryQueueAlerts).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), retryLen, "jobs stay parked until the relay recovers")
}
