// Package voice plays sound alerts and text-to-speech in a Discord voice channel.
package voice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Track is one playable audio item.
type Track interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Player streams a single audio source to completion.
type Player interface {
	Play(ctx context.Context, audio io.Reader) error
}

// Queue plays tracks strictly one at a time in FIFO order. A failing track is
// logged and skipped; it never stalls the tracks behind it.
type Queue struct {
	player Player

	mu      sync.Mutex
	items   []Track
	playing bool
	notify  chan struct{}
}

func NewQueue(player Player) *Queue {
	return &Queue{player: player, notify: make(chan struct{}, 1)}
}

// Enqueue appends tracks as one contiguous group.
func (q *Queue) Enqueue(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, tracks...)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len is the number of tracks waiting, excluding the one playing.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Playing reports whether a track is in flight.
func (q *Queue) Playing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playing
}

// Run drains the queue until ctx is done. Only one Run may be active.
func (q *Queue) Run(ctx context.Context) {
	for {
		t, ok := q.next()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.notify:
				continue
			}
		}
		if err := q.play(ctx, t); err != nil {
			slog.Error("❌ audio track failed", "track", t.Name(), "err", err)
		}
		if ctx.Err() != nil {
			q.done()
			return
		}
	}
}

func (q *Queue) next() (Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		q.playing = false
		return nil, false
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	q.playing = true
	return t, true
}

func (q *Queue) done() {
	q.mu.Lock()
	q.playing = false
	q.mu.Unlock()
}

func (q *Queue) play(ctx context.Context, t Track) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	rc, err := t.Open(ctx)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	return q.player.Play(ctx, rc)
}
