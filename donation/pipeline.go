// Package donation is the ingestion pipeline: every donation event, from the
// socket, the webhook or a test command, goes through Pipeline.Handle.
package donation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/milestone"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/settings"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"

	"github.com/google/uuid"
)

// Store is the persistence the pipeline needs. *store.Store implements it.
type Store interface {
	settings.Backend
	AddDonation(ctx context.Context, d *models.Donation) (bool, error)
	TopDonor(ctx context.Context) (models.LeaderboardEntry, bool, error)
}

type Censor interface {
	Censor(text string) string
}

type GoalChecker interface {
	CheckCrossing(ctx context.Context, amountJustAdded int64) (goals.Progress, bool, error)
}

type ThankYou interface {
	Message(ctx context.Context, d thankyou.Data, milestone bool) (thankyou.Tier, string)
}

// Notification is what a sink receives for one donation.
type Notification struct {
	Donation models.Donation // Message already censored
	Filtered bool            // the message was changed by the filter
	Media    string

	Milestone    milestone.Tier
	HasMilestone bool

	ThankYou     string
	ThankYouTier thankyou.Tier

	IsTest bool
}

// Notifier is a chat or overlay destination. Failures are logged per sink.
type Notifier interface {
	Name() string
	NotifyDonation(ctx context.Context, n Notification) error
	NotifyGoalReached(ctx context.Context, p goals.Progress) error
}

type RoleUpdater interface {
	UpdateTopDonor(ctx context.Context, top models.LeaderboardEntry) error
}

// Alerter is the audio side channel.
type Alerter interface {
	Active() bool
	Announce(speech string, speak bool)
}

type MediaMirror interface {
	Mirror(ctx context.Context, donationID, mediaURL string) string
}

type Options struct {
	Store     Store
	Filter    Censor
	Goals     GoalChecker
	ThankYou  ThankYou
	Tiers     []milestone.Tier
	Notifiers []Notifier

	// optional
	Roles    RoleUpdater
	Alerter  Alerter
	Mirror   MediaMirror
	MinAlert MinAlert
}

type Pipeline struct {
	opts Options

	// serializes persist + crossing check so the running total seen by
	// CheckCrossing includes exactly this donation and the ones before it
	mu sync.Mutex

	sinkMu    sync.Mutex
	notifiers []Notifier
}

func New(opts Options) *Pipeline {
	if opts.Tiers == nil {
		opts.Tiers = milestone.DefaultTiers
	}
	return &Pipeline{opts: opts, notifiers: opts.Notifiers}
}

// AddNotifier registers a sink after construction (the Discord session is
// ready only after the pipeline exists).
func (p *Pipeline) AddNotifier(n Notifier) {
	p.sinkMu.Lock()
	defer p.sinkMu.Unlock()
	p.notifiers = append(p.notifiers, n)
}

func (p *Pipeline) sinks() []Notifier {
	p.sinkMu.Lock()
	defer p.sinkMu.Unlock()
	return append([]Notifier(nil), p.notifiers...)
}

type Result struct {
	Donation  models.Donation
	Persisted bool
	Duplicate bool

	Milestone    milestone.Tier
	HasMilestone bool

	GoalReached bool
	Notified    bool
	Announced   bool
}

// HandleRaw decodes a socket or webhook body and handles every event in it.
// The only error is a body that cannot be decoded.
func (p *Pipeline) HandleRaw(ctx context.Context, body []byte, isTest bool) ([]Result, error) {
	payloads, err := ParsePayloads(body)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(payloads))
	for _, pl := range payloads {
		results = append(results, p.Handle(ctx, pl, isTest))
	}
	return results, nil
}

// Handle runs one event through the pipeline. It never fails the caller:
// every error after normalization is logged and swallowed.
func (p *Pipeline) Handle(ctx context.Context, payload Payload, isTest bool) (res Result) {
	d, media := payload.Normalize()
	res.Donation = d

	defer func() {
		if r := recover(); r != nil {
			slog.Error("❌ panic in donation pipeline", "donation_id", d.ID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	slog.Info("💰 Donasi diterima", "donation_id", d.ID, "donor", d.DonorName, "amount", d.Amount, "test", isTest)

	var (
		progress    goals.Progress
		derivedOK   bool
		goalReached bool
	)
	if !isTest {
		inserted, err := p.persist(ctx, &d, &progress, &goalReached)
		switch {
		case err != nil:
			slog.Error("❌ gagal menyimpan donasi", "donation_id", d.ID, "err", err)
		case !inserted:
			slog.Warn("duplicate donation ignored", "donation_id", d.ID)
			res.Duplicate = true
			return res
		default:
			res.Persisted = true
			derivedOK = true
		}
		res.Donation = d
		res.GoalReached = goalReached
	}

	tier, hasTier := milestone.Classify(p.opts.Tiers, d.Amount)
	res.Milestone, res.HasMilestone = tier, hasTier

	original := d.Message
	censored := original
	if p.opts.Filter != nil {
		censored = p.opts.Filter.Censor(original)
	}

	mins := p.opts.MinAlert
	if p.opts.Store != nil {
		mins = LoadMinAlert(ctx, p.opts.Store, p.opts.MinAlert)
	}

	if d.Amount >= mins.Chat {
		n := Notification{
			Donation:     d,
			Filtered:     censored != original,
			Media:        media,
			Milestone:    tier,
			HasMilestone: hasTier,
			IsTest:       isTest,
		}
		n.Donation.Message = censored
		if media != "" && p.opts.Mirror != nil {
			n.Media = p.opts.Mirror.Mirror(ctx, d.ID, media)
		}
		if p.opts.ThankYou != nil {
			n.ThankYouTier, n.ThankYou = p.opts.ThankYou.Message(ctx, thankyou.Data{
				Name:    d.DonorName,
				Amount:  d.Amount,
				Message: censored,
			}, goalReached)
		}
		res.Notified = p.fanOut(d.ID, func(s Notifier) error { return s.NotifyDonation(ctx, n) })
	} else {
		slog.Info("donation below chat minimum, notification skipped", "donation_id", d.ID, "min", mins.Chat)
	}

	if !isTest && p.opts.Alerter != nil && p.opts.Alerter.Active() {
		p.opts.Alerter.Announce(SpeechText(d.DonorName, d.Amount, censored), d.Amount >= mins.TTS)
		res.Announced = true
	}

	if !derivedOK {
		return res
	}
	if goalReached {
		slog.Info("🎊 Goal tercapai", "donation_id", d.ID, "target", progress.Target, "total", progress.CurrentTotal)
		p.fanOut(d.ID, func(s Notifier) error { return s.NotifyGoalReached(ctx, progress) })
	}
	p.updateTopDonor(ctx, d.ID)
	return res
}

// persist inserts d and checks the goal crossing as one unit.
func (p *Pipeline) persist(ctx context.Context, d *models.Donation, progress *goals.Progress, reached *bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inserted, err := p.opts.Store.AddDonation(ctx, d)
	if err != nil || !inserted {
		return inserted, err
	}
	if p.opts.Goals == nil {
		return true, nil
	}
	pr, crossed, err := p.opts.Goals.CheckCrossing(ctx, d.Amount)
	if err != nil {
		slog.Error("goal check failed", "donation_id", d.ID, "err", err)
		return true, nil
	}
	*progress, *reached = pr, crossed
	return true, nil
}

// fanOut calls fn on every sink; it reports whether at least one succeeded.
func (p *Pipeline) fanOut(donationID string, fn func(Notifier) error) bool {
	ok := false
	for _, s := range p.sinks() {
		if err := safeCall(func() error { return fn(s) }); err != nil {
			slog.Error("❌ notification failed", "sink", s.Name(), "donation_id", donationID, "err", err)
			continue
		}
		ok = true
	}
	return ok
}

func (p *Pipeline) updateTopDonor(ctx context.Context, donationID string) {
	if p.opts.Roles == nil {
		return
	}
	top, ok, err := p.opts.Store.TopDonor(ctx)
	if err != nil {
		slog.Error("top donor lookup failed", "donation_id", donationID, "err", err)
		return
	}
	if !ok {
		return
	}
	if err := safeCall(func() error { return p.opts.Roles.UpdateTopDonor(ctx, top) }); err != nil {
		slog.Error("❌ Error updating top donator role", "donation_id", donationID, "err", err)
	}
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// SpeechText is the sentence read out for a donation.
func SpeechText(name string, amount int64, censoredMessage string) string {
	text := fmt.Sprintf("%s donasi %d ribu rupiah.", name, amount/1000)
	if censoredMessage != "" {
		text += " Pesan: " + censoredMessage
	}
	return text
}

// TestPayload builds the payload of an admin-triggered test donation.
func TestPayload(name string, amount int64, message string) Payload {
	return Payload{
		ID:      "test_" + uuid.NewString(),
		Donator: name,
		Amount:  amount,
		Message: message,
	}
}
