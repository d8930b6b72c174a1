package worker

// alert_worker.go
// Processes low-score alert jobs from QueueAlerts: when an evaluation falls
// below the alert threshold, the area supervisor gets an email. Delivery runs
// through the circuit breaker so a downed SMTP relay does not tie up the
// pool; failed jobs go to the retry queue and eventually the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxAlertRetries bounds delivery attempts before a job is dead-lettered.
const MaxAlertRetries = 5

// AlertJobPayload is the job envelope sent to QueueAlerts.
type AlertJobPayload struct {
	ToEmail      string  `json:"to_email"`
	EmployeeName string  `json:"employee_name"`
	PlaceName    string  `json:"place_name"`
	Score        float64 `json:"score"`
	Date         string  `json:"date"`
}

// AlertWorker delivers low-score alert emails.
type AlertWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// Process attempts one delivery. On failure the job returns to the retry
// queue with its attempt count bumped; past MaxAlertRetries it goes to the
// DLQ instead.
func (w *AlertWorker) Process(ctx context.Context, job Job) {
	var payload AlertJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("alert_worker: empty to_email — skipping")
		return
	}

	subject := fmt.Sprintf("Low evaluation score: %s", payload.EmployeeName)
	body := fmt.Sprintf(
		"Employee %s was evaluated at %s on %s with an overall score of %.1f.\n\n"+
			"Please schedule a follow-up visit.\n",
		payload.EmployeeName, payload.PlaceName, payload.Date, payload.Score)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, subject, body)
	})
	if err == nil {
		log.Info().Str("to", payload.ToEmail).Str("place", payload.PlaceName).Msg("alert_worker: alert sent")
		return
	}

	job.Attempts++
	if job.Attempts >= MaxAlertRetries {
		SendToDLQ(ctx, w.rdb, QueueAlerts, job.Type, job.Payload,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxAlertRetries, err), job.Attempts)
		return
	}

	encoded, marshalErr := json.Marshal(job)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("alert_worker: failed to re-marshal job")
		return
	}
	if pushErr := w.rdb.LPush(ctx, RetryQueueAlerts, encoded).Err(); pushErr != nil {
		log.Error().Err(pushErr).Msg("alert_worker: failed to push to retry queue")
		return
	}
	log.Warn().
		Err(err).
		Str("to", payload.ToEmail).
		Int("attempts", job.Attempts).
		Msg("alert_worker: delivery failed, scheduled retry")
}
