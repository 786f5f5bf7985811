package jobs

import (
	"time"

	"github.com/hibiken/asynq"
)

// NewServer builds the asynq worker for digest tasks.
func NewServer(opt asynq.RedisClientOpt) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			backoff := []time.Duration{1, 3, 5} // dalam menit
			if n <= 0 {
				return 0
			}
			if n <= len(backoff) {
				return backoff[n-1] * time.Minute
			}
			return 5 * time.Minute
		},
	})
}

func NewServeMux(p *DigestProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDigestDaily, p.ProcessTask)
	mux.HandleFunc(TaskDigestWeekly, p.ProcessTask)
	return mux
}
