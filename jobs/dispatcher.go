// jobs/dispatcher.go: build digest tasks for the queue
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskDigestDaily  = "digest:daily"
	TaskDigestWeekly = "digest:weekly"
)

type DigestPayload struct {
	Cadence Cadence `json:"cadence"`
}

func taskType(c Cadence) string {
	if c == CadenceWeekly {
		return TaskDigestWeekly
	}
	return TaskDigestDaily
}

func NewDigestTask(c Cadence) (*asynq.Task, error) {
	payload, err := json.Marshal(DigestPayload{Cadence: c})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType(c),
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	), nil
}
