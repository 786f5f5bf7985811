package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/analytics"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/jobs"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
	PeriodAll    Period = "all"
)

// DigestRepository is implemented by *store.Store.
type DigestRepository interface {
	TotalStats(ctx context.Context) (models.Stats, error)
	StatsIn(ctx context.Context, w store.Window) (models.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	LeaderboardIn(ctx context.Context, w store.Window, limit int) ([]models.LeaderboardEntry, error)
}

type Summary struct {
	Period Period
	// Day is the local day a daily summary covers.
	Day   time.Time
	Stats models.Stats
	Top   []models.LeaderboardEntry
}

func (s Summary) Empty() bool { return s.Stats.TotalTransactions == 0 }

type Digest struct {
	repo DigestRepository
	loc  *time.Location
	now  func() time.Time
}

func NewDigest(repo DigestRepository, loc *time.Location) *Digest {
	if loc == nil {
		loc = time.UTC
	}
	return &Digest{repo: repo, loc: loc, now: time.Now}
}

// Summarize collects the stats of one period. dayOffset shifts the daily
// window (-1 is yesterday) and is ignored for the other periods.
func (d *Digest) Summarize(ctx context.Context, p Period, dayOffset int) (Summary, error) {
	now := d.now()
	sum := Summary{Period: p}

	var (
		st    models.Stats
		top   []models.LeaderboardEntry
		err   error
		limit = 10
	)
	switch p {
	case PeriodDaily:
		limit = 5
		w := analytics.TodayWindow(now.In(d.loc).AddDate(0, 0, dayOffset), d.loc)
		sum.Day = w.From
		if st, err = d.repo.StatsIn(ctx, w); err == nil {
			top, err = d.repo.LeaderboardIn(ctx, w, limit)
		}
	case PeriodWeekly:
		w := analytics.LastDaysWindow(now, 7)
		if st, err = d.repo.StatsIn(ctx, w); err == nil {
			top, err = d.repo.LeaderboardIn(ctx, w, limit)
		}
	default:
		sum.Period = PeriodAll
		if st, err = d.repo.TotalStats(ctx); err == nil {
			top, err = d.repo.Leaderboard(ctx, limit)
		}
	}
	if err != nil {
		return Summary{}, fmt.Errorf("summarize %s: %w", p, err)
	}
	sum.Stats, sum.Top = st, top
	return sum, nil
}

// SummaryEmbed renders a summary requested with /summary.
func (d *Digest) SummaryEmbed(s Summary) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Color: colorMint, Timestamp: stamp(d.now())}
	switch s.Period {
	case PeriodDaily:
		e.Title = "📊 Rangkuman Donasi Hari Ini"
		e.Description = "Ringkasan donasi " + utils.FormatDate(s.Day)
	case PeriodWeekly:
		e.Title = "📊 Rangkuman Donasi Minggu Ini"
		e.Description = "Ringkasan donasi 7 hari terakhir"
	default:
		e.Title = "📊 Rangkuman Donasi Semua Waktu"
		e.Description = "Ringkasan total semua donasi"
	}
	e.Fields = append(statsFields(s.Stats), field("🏆 Top Donatur", orNoData(ranking(s.Top, true)), false))
	return e
}

// DigestEmbed renders a scheduled digest, including the empty case.
func (d *Digest) DigestEmbed(s Summary) *discordgo.MessageEmbed {
	at := stamp(d.now())
	if s.Empty() {
		e := &discordgo.MessageEmbed{Color: colorGray, Title: "📊 Rangkuman Harian", Description: "Tidak ada donasi pada " + utils.FormatDate(s.Day) + ".", Timestamp: at}
		if s.Period == PeriodWeekly {
			e.Title, e.Description = "📊 Rangkuman Mingguan", "Tidak ada donasi minggu ini."
		}
		return e
	}

	e := &discordgo.MessageEmbed{Footer: footer("Summary otomatis"), Timestamp: at}
	if s.Period == PeriodWeekly {
		e.Color = colorBlurple
		e.Title = "📊 Rangkuman Donasi Mingguan"
		e.Description = "Ringkasan donasi 7 hari terakhir"
		e.Fields = append(statsFields(s.Stats), field("🏆 Top 10 Donatur Minggu Ini", orNoData(ranking(s.Top, true)), false))
		return e
	}
	e.Color = colorMint
	e.Title = "📊 Rangkuman Donasi Harian"
	e.Description = fmt.Sprintf("Ringkasan donasi %s", utils.FormatDate(s.Day))
	e.Fields = append(statsFields(s.Stats), field("🏆 Top Donatur Hari Ini", orNoData(ranking(s.Top, false)), false))
	return e
}

func orNoData(s string) string {
	if s == "" {
		return "Tidak ada data"
	}
	return s
}

// DigestSender posts scheduled digests to the summary channel.
type DigestSender struct {
	msg       Messenger
	channelID string
	digest    *Digest
}

func NewDigestSender(msg Messenger, channelID string, digest *Digest) *DigestSender {
	return &DigestSender{msg: msg, channelID: channelID, digest: digest}
}

// SendDigest fires at local midnight, so the daily digest covers the day
// that just ended.
func (s *DigestSender) SendDigest(ctx context.Context, c jobs.Cadence) error {
	var (
		sum Summary
		err error
	)
	switch c {
	case jobs.CadenceWeekly:
		sum, err = s.digest.Summarize(ctx, PeriodWeekly, 0)
	default:
		sum, err = s.digest.Summarize(ctx, PeriodDaily, -1)
	}
	if err != nil {
		return err
	}

	msg := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{s.digest.DigestEmbed(sum)}}
	if _, err := s.msg.ChannelMessageSendComplex(s.channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send %s digest: %w", c, err)
	}
	slog.Info("📊 Summary terkirim", "cadence", c, "transactions", sum.Stats.TotalTransactions)
	return nil
}
