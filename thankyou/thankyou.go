// Package thankyou renders the customizable thank-you line of a donation
// notification. Templates and tier thresholds are stored in settings.
package thankyou

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/settings"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"
)

type Tier string

const (
	TierSmall     Tier = "small"
	TierMedium    Tier = "medium"
	TierLarge     Tier = "large"
	TierMilestone Tier = "milestone"
)

// MinThreshold is the lowest value accepted for a tier threshold.
const MinThreshold = 1000

var (
	ErrUnknownTier       = errors.New("unknown tier")
	ErrEmptyTemplate     = errors.New("template must not be empty")
	ErrThresholdTooLow   = errors.New("threshold must be at least 1000")
	ErrThresholdOrdering = errors.New("medium threshold must be below large threshold")
)

// Tiers lists every tier in display order.
var Tiers = []Tier{TierSmall, TierMedium, TierLarge, TierMilestone}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tiers {
		if t == known {
			return t, nil
		}
	}
	return "", ErrUnknownTier
}

// Color is the embed color for the tier.
func (t Tier) Color() int {
	switch t {
	case TierMedium:
		return 0xFFD700
	case TierLarge:
		return 0xFF6B35
	case TierMilestone:
		return 0xFF00FF
	default:
		return 0x00FF00
	}
}

type Thresholds struct {
	Small  int64 `json:"small"`
	Medium int64 `json:"medium"`
	Large  int64 `json:"large"`
}

type Settings struct {
	Templates map[Tier]string `json:"templates"`
	Tiers     Thresholds      `json:"tiers"`
}

func Defaults() Settings {
	return Settings{
		Templates: map[Tier]string{
			TierSmall:     "🎉 Terima kasih {name}! Donasimu sebesar {amount} sangat berarti!",
			TierMedium:    "🌟 WOW! {name} baru saja donasi {amount}! Terima kasih banyak! 💕",
			TierLarge:     "🔥🔥🔥 AMAZING! {name} memberikan {amount}! Kamu luar biasa! 🎊✨",
			TierMilestone: "🎆 MILESTONE! {name} membantu mencapai target dengan donasi {amount}! 🏆",
		},
		Tiers: Thresholds{Small: 0, Medium: 50000, Large: 100000},
	}
}

// TierFor picks the amount tier. The milestone tier is never returned here.
func (s Settings) TierFor(amount int64) Tier {
	switch {
	case amount >= s.Tiers.Large:
		return TierLarge
	case amount >= s.Tiers.Medium:
		return TierMedium
	default:
		return TierSmall
	}
}

// Template returns the template for t, falling back to the default one.
func (s Settings) Template(t Tier) string {
	if tpl := s.Templates[t]; tpl != "" {
		return tpl
	}
	return Defaults().Templates[t]
}

type Data struct {
	Name    string
	Amount  int64
	Message string
}

var placeholder = regexp.MustCompile(`(?i)\{(name|amount|message|tier|date|time)\}`)

// Render fills the placeholders of template. Matching is case-insensitive.
func Render(template string, d Data, tier Tier, now time.Time) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		switch strings.ToLower(m[1 : len(m)-1]) {
		case "name":
			if d.Name == "" {
				return "Anonim"
			}
			return d.Name
		case "amount":
			return utils.FormatRupiah(d.Amount)
		case "message":
			return d.Message
		case "tier":
			return string(tier)
		case "date":
			return now.Format("2/1/2006")
		default:
			return now.Format("15.04.05")
		}
	})
}

type Service struct {
	repo settings.Backend
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo settings.Backend, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Settings returns the stored settings merged over the defaults.
// A corrupt value is logged and treated as absent.
func (s *Service) Settings(ctx context.Context) Settings {
	out := Defaults()
	var stored Settings
	ok, err := settings.Load(ctx, s.repo, settings.KeyThankYou, &stored)
	if err != nil {
		slog.Warn("thank-you settings unreadable, using defaults", "err", err)
		return out
	}
	if !ok {
		return out
	}
	for t, tpl := range stored.Templates {
		if tpl != "" {
			out.Templates[t] = tpl
		}
	}
	if stored.Tiers.Medium > 0 {
		out.Tiers.Medium = stored.Tiers.Medium
	}
	if stored.Tiers.Large > 0 {
		out.Tiers.Large = stored.Tiers.Large
	}
	return out
}

func (s *Service) SetTemplate(ctx context.Context, tier Tier, template string) error {
	if _, err := ParseTier(string(tier)); err != nil {
		return err
	}
	template = strings.TrimSpace(template)
	if template == "" {
		return ErrEmptyTemplate
	}
	st := s.Settings(ctx)
	st.Templates[tier] = template
	return settings.Save(ctx, s.repo, settings.KeyThankYou, st)
}

// SetThreshold changes the lower bound of the medium or large tier.
func (s *Service) SetThreshold(ctx context.Context, tier Tier, amount int64) error {
	if amount < MinThreshold {
		return ErrThresholdTooLow
	}
	st := s.Settings(ctx)
	switch tier {
	case TierMedium:
		st.Tiers.Medium = amount
	case TierLarge:
		st.Tiers.Large = amount
	default:
		return ErrUnknownTier
	}
	if st.Tiers.Medium >= st.Tiers.Large {
		return ErrThresholdOrdering
	}
	return settings.Save(ctx, s.repo, settings.KeyThankYou, st)
}

func (s *Service) Reset(ctx context.Context) error {
	return settings.Save(ctx, s.repo, settings.KeyThankYou, Defaults())
}

// Message renders the thank-you line. milestone selects the milestone template
// regardless of amount.
func (s *Service) Message(ctx context.Context, d Data, milestone bool) (Tier, string) {
	st := s.Settings(ctx)
	tier := st.TierFor(d.Amount)
	if milestone {
		tier = TierMilestone
	}
	return tier, Render(st.Template(tier), d, tier, s.now().In(s.loc))
}

// Preview renders the template of tier with sample data.
func (s *Service) Preview(ctx context.Context, tier Tier) string {
	st := s.Settings(ctx)
	amount := map[Tier]int64{
		TierSmall:     st.Tiers.Medium / 2,
		TierMedium:    st.Tiers.Medium,
		TierLarge:     st.Tiers.Large,
		TierMilestone: st.Tiers.Large,
	}[tier]
	d := Data{Name: "Donatur Contoh", Amount: amount, Message: "Semangat terus!"}
	return Render(st.Template(tier), d, tier, s.now().In(s.loc))
}
