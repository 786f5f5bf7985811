// Package goals owns the single active fundraising goal.
package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/settings"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/shopspring/decimal"
)

const DefaultDescription = "Donation Goal"

var ErrInvalidTarget = errors.New("goal target must be positive")

type Goal struct {
	Target      int64     `json:"target"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Progress struct {
	Goal
	CurrentTotal int64   `json:"currentTotal"`
	Remaining    int64   `json:"remaining"`
	IsComplete   bool    `json:"isComplete"`
	Percentage   float64 `json:"percentage"`
	TotalDonors  int64   `json:"totalDonors"`
}

// Bar renders a 20 cell progress bar followed by the percentage.
func (p Progress) Bar() string {
	return fmt.Sprintf("%s %.1f%%", utils.ProgressBar(p.Percentage, 20), p.Percentage)
}

// Repository is what the tracker needs from persistence. *store.Store implements it.
type Repository interface {
	settings.Backend
	TotalStats(ctx context.Context) (models.Stats, error)
}

type Tracker struct {
	repo Repository
	now  func() time.Time

	mu sync.Mutex
}

func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo, now: time.Now}
}

// SetGoal replaces the active goal.
func (t *Tracker) SetGoal(ctx context.Context, target int64, description string) (Goal, error) {
	if target <= 0 {
		return Goal{}, ErrInvalidTarget
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription
	}
	g := Goal{Target: target, Description: description, CreatedAt: t.now().UTC()}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := settings.Save(ctx, t.repo, settings.KeyDonationGoal, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// GetGoal returns the active goal; ok is false when none is set.
func (t *Tracker) GetGoal(ctx context.Context) (g Goal, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

func (t *Tracker) load(ctx context.Context) (Goal, bool, error) {
	var g Goal
	ok, err := settings.Load(ctx, t.repo, settings.KeyDonationGoal, &g)
	if err != nil || !ok || g.Target <= 0 {
		return Goal{}, false, err
	}
	return g, true, nil
}

// ResetGoal clears the active goal.
func (t *Tracker) ResetGoal(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return settings.Delete(ctx, t.repo, settings.KeyDonationGoal)
}

// Progress computes progress against the live total of all persisted donations.
func (t *Tracker) Progress(ctx context.Context) (Progress, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok, err := t.load(ctx)
	if err != nil || !ok {
		return Progress{}, false, err
	}
	st, err := t.repo.TotalStats(ctx)
	if err != nil {
		return Progress{}, false, err
	}
	return compute(g, st), true, nil
}

func compute(g Goal, st models.Stats) Progress {
	p := Progress{
		Goal:         g,
		CurrentTotal: st.TotalAmount,
		TotalDonors:  st.TotalDonors,
		IsComplete:   st.TotalAmount >= g.Target,
	}
	if remaining := g.Target - st.TotalAmount; remaining > 0 {
		p.Remaining = remaining
	}

	pct := decimal.NewFromInt(st.TotalAmount).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(g.Target)).
		Round(1)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		pct = decimal.NewFromInt(100)
	}
	p.Percentage = pct.InexactFloat64()
	return p
}

// CheckCrossing must run after the donation of amountJustAdded is persisted
// and before any other donation is. It reports true exactly when the total
// moved from below the target to at or above it.
func (t *Tracker) CheckCrossing(ctx context.Context, amountJustAdded int64) (Progress, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok, err := t.load(ctx)
	if err != nil || !ok {
		return Progress{}, false, err
	}
	st, err := t.repo.TotalStats(ctx)
	if err != nil {
		return Progress{}, false, err
	}
	current := st.TotalAmount
	previous := current - amountJustAdded
	crossed := previous < g.Target && current >= g.Target
	return compute(g, st), crossed, nil
}
