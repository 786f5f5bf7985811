// jobs/processor.go: run digest tasks from the queue or from cron
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Sender delivers one digest message.
type Sender interface {
	SendDigest(ctx context.Context, c Cadence) error
}

// Locker claims a digest window. *SendLock implements it.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type DigestProcessor struct {
	sender Sender
	lock   Locker
	loc    *time.Location
	now    func() time.Time
}

func NewDigestProcessor(sender Sender, lock Locker, loc *time.Location) *DigestProcessor {
	if lock == nil {
		lock = NewSendLock(nil)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DigestProcessor{sender: sender, lock: lock, loc: loc, now: time.Now}
}

func (p *DigestProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return p.Run(ctx, payload.Cadence)
}

// Run sends the digest for c unless another worker already sent it for the
// current window.
func (p *DigestProcessor) Run(ctx context.Context, c Cadence) error {
	key := windowKey(c, p.now().In(p.loc))
	if err := p.lock.Acquire(ctx, key, 48*time.Hour); err != nil {
		if errors.Is(err, ErrLocked) {
			slog.Info("digest already sent for this window", "cadence", c, "key", key)
			return nil
		}
		return err
	}

	if err := p.sender.SendDigest(ctx, c); err != nil {
		// allow a retry to take the window again
		if rerr := p.lock.Release(ctx, key); rerr != nil {
			slog.Warn("⚠️ digest lock not released, retries skip this window", "cadence", c, "key", key, "err", rerr)
		}
		return fmt.Errorf("send %s digest: %w", c, err)
	}
	slog.Info("📊 Digest terkirim", "cadence", c)
	return nil
}

func windowKey(c Cadence, local time.Time) string {
	if c == CadenceWeekly {
		y, w := local.ISOWeek()
		return fmt.Sprintf("digest:weekly:%d-W%02d", y, w)
	}
	return "digest:daily:" + local.Format("2006-01-02")
}
