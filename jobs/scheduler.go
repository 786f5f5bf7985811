package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/settings"
)

type Mode string

const (
	ModeOff    Mode = "off"
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
	ModeBoth   Mode = "both"
)

type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// Cron specs, evaluated in the configured timezone.
const (
	SpecDaily  = "0 0 * * *"
	SpecWeekly = "0 0 * * 1"
)

var ErrInvalidMode = errors.New("mode must be off, daily, weekly or both")

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeOff, ModeDaily, ModeWeekly, ModeBoth:
		return m, nil
	}
	return "", ErrInvalidMode
}

// Cadences lists what m schedules.
func (m Mode) Cadences() []Cadence {
	switch m {
	case ModeDaily:
		return []Cadence{CadenceDaily}
	case ModeWeekly:
		return []Cadence{CadenceWeekly}
	case ModeBoth:
		return []Cadence{CadenceDaily, CadenceWeekly}
	}
	return nil
}

func (c Cadence) Spec() string {
	if c == CadenceWeekly {
		return SpecWeekly
	}
	return SpecDaily
}

// Backend installs and removes recurring entries.
type Backend interface {
	Add(c Cadence, spec string) (id string, err error)
	Remove(id string) error
}

// Scheduler keeps at most one entry per cadence.
type Scheduler struct {
	backend Backend
	repo    settings.Backend

	mu      sync.Mutex
	mode    Mode
	entries map[Cadence]string
}

func NewScheduler(backend Backend, repo settings.Backend) *Scheduler {
	return &Scheduler{backend: backend, repo: repo, mode: ModeOff, entries: map[Cadence]string{}}
}

// Configure cancels every installed entry, installs the ones mode needs and
// persists mode.
func (s *Scheduler) Configure(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.apply(mode); err != nil {
		return err
	}
	return settings.Save(ctx, s.repo, settings.KeyAutoSummary, string(mode))
}

// Restore applies the persisted mode; a missing value means off.
func (s *Scheduler) Restore(ctx context.Context) (Mode, error) {
	var raw string
	if _, err := settings.Load(ctx, s.repo, settings.KeyAutoSummary, &raw); err != nil {
		return ModeOff, err
	}
	mode := ModeOff
	if raw != "" {
		m, err := ParseMode(raw)
		if err != nil {
			slog.Warn("ignoring stored auto summary mode", "value", raw)
		} else {
			mode = m
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.apply(mode); err != nil {
		return ModeOff, err
	}
	if mode != ModeOff {
		slog.Info("⏰ Auto summary dimuat", "mode", mode)
	}
	return mode, nil
}

func (s *Scheduler) apply(mode Mode) error {
	for c, id := range s.entries {
		if err := s.backend.Remove(id); err != nil {
			return fmt.Errorf("remove %s entry: %w", c, err)
		}
		delete(s.entries, c)
	}
	s.mode = ModeOff

	for _, c := range mode.Cadences() {
		id, err := s.backend.Add(c, c.Spec())
		if err != nil {
			return fmt.Errorf("schedule %s: %w", c, err)
		}
		s.entries[c] = id
		slog.Info("⏰ Summary aktif", "cadence", c, "spec", c.Spec())
	}
	s.mode = mode
	return nil
}

func (s *Scheduler) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Entries returns a copy of the installed entry ids.
func (s *Scheduler) Entries() map[Cadence]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Cadence]string, len(s.entries))
	for c, id := range s.entries {
		out[c] = id
	}
	return out
}

// Stop removes every entry without touching the persisted mode.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c, id := range s.entries {
		if err := s.backend.Remove(id); err != nil {
			slog.Warn("remove schedule entry", "cadence", c, "err", err)
		}
		delete(s.entries, c)
	}
}
