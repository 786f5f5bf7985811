package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// CronBackend runs digests in process. Used when no redis is configured.
type CronBackend struct {
	cron      *cron.Cron
	processor *DigestProcessor
}

func NewCronBackend(loc *time.Location, processor *DigestProcessor) *CronBackend {
	return &CronBackend{cron: cron.New(cron.WithLocation(loc)), processor: processor}
}

func (b *CronBackend) Add(c Cadence, spec string) (string, error) {
	id, err := b.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := b.processor.Run(ctx, c); err != nil {
			slog.Error("❌ Error sending summary", "cadence", c, "err", err)
		}
	})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(int(id)), nil
}

func (b *CronBackend) Remove(id string) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("bad cron entry id %q: %w", id, err)
	}
	b.cron.Remove(cron.EntryID(n))
	return nil
}

func (b *CronBackend) Start() { b.cron.Start() }

// Stop waits for a running digest to finish.
func (b *CronBackend) Stop() { <-b.cron.Stop().Done() }

// AsynqBackend registers periodic tasks with the asynq scheduler; an asynq
// server (see NewServer) executes them.
type AsynqBackend struct {
	scheduler *asynq.Scheduler
}

func NewAsynqBackend(opt asynq.RedisClientOpt, loc *time.Location) *AsynqBackend {
	return &AsynqBackend{scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: loc})}
}

func (b *AsynqBackend) Add(c Cadence, spec string) (string, error) {
	task, err := NewDigestTask(c)
	if err != nil {
		return "", err
	}
	return b.scheduler.Register(spec, task)
}

func (b *AsynqBackend) Remove(id string) error {
	return b.scheduler.Unregister(id)
}

func (b *AsynqBackend) Start() error { return b.scheduler.Start() }

func (b *AsynqBackend) Stop() { b.scheduler.Shutdown() }
