// Package analytics computes donation statistics over calendar windows in the
// configured timezone.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/shopspring/decimal"
)

type Repository interface {
	TotalStats(ctx context.Context) (models.Stats, error)
	StatsIn(ctx context.Context, w store.Window) (models.Stats, error)
	AmountStats(ctx context.Context) (models.AmountStats, error)
	DonationsBetween(ctx context.Context, from, to time.Time) ([]models.Donation, error)
}

type Bucket struct {
	Label string
	Count int64
	Total int64
}

type Dashboard struct {
	Totals  models.Stats
	Amounts models.AmountStats

	ThisMonth   int64
	LastMonth   int64
	MonthChange float64 // percent, 0 when last month had nothing

	PeakHour       int
	PeakHourBucket Bucket
	PeakDay        Bucket
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Hourly buckets donations of the last 7 days by local hour of day.
func (s *Service) Hourly(ctx context.Context) ([24]Bucket, error) {
	var out [24]Bucket
	for h := range out {
		out[h].Label = fmt.Sprintf("%02d", h)
	}
	w := LastDaysWindow(s.now(), 7)
	rows, err := s.repo.DonationsBetween(ctx, w.From, w.To)
	if err != nil {
		return out, err
	}
	for _, d := range rows {
		h := d.Timestamp.In(s.loc).Hour()
		out[h].Count++
		out[h].Total += d.Amount
	}
	return out, nil
}

// HourBlocks folds Hourly into six 4-hour blocks.
func (s *Service) HourBlocks(ctx context.Context) ([]Bucket, error) {
	hours, err := s.Hourly(ctx)
	if err != nil {
		return nil, err
	}
	blocks := make([]Bucket, 0, 6)
	for start := 0; start < 24; start += 4 {
		b := Bucket{Label: fmt.Sprintf("%02d-%02d", start, start+3)}
		for h := start; h < start+4; h++ {
			b.Count += hours[h].Count
			b.Total += hours[h].Total
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// Weekdays buckets donations of the last 30 days by local weekday, Sunday first.
func (s *Service) Weekdays(ctx context.Context) ([7]Bucket, error) {
	var out [7]Bucket
	for d := range out {
		out[d].Label = utils.DayName(time.Weekday(d))
	}
	w := LastDaysWindow(s.now(), 30)
	rows, err := s.repo.DonationsBetween(ctx, w.From, w.To)
	if err != nil {
		return out, err
	}
	for _, d := range rows {
		wd := d.Timestamp.In(s.loc).Weekday()
		out[wd].Count++
		out[wd].Total += d.Amount
	}
	return out, nil
}

// Monthly returns one bucket per calendar month, oldest first, ending with the current month.
func (s *Service) Monthly(ctx context.Context, months int) ([]Bucket, error) {
	out := make([]Bucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		w := MonthWindow(s.now(), s.loc, -i)
		st, err := s.repo.StatsIn(ctx, w)
		if err != nil {
			return nil, err
		}
		out = append(out, Bucket{
			Label: w.From.In(s.loc).Format("2006-01"),
			Count: st.TotalTransactions,
			Total: st.TotalAmount,
		})
	}
	return out, nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var dash Dashboard
	var err error

	if dash.Totals, err = s.repo.TotalStats(ctx); err != nil {
		return dash, err
	}
	if dash.Amounts, err = s.repo.AmountStats(ctx); err != nil {
		return dash, err
	}

	this, err := s.repo.StatsIn(ctx, MonthWindow(s.now(), s.loc, 0))
	if err != nil {
		return dash, err
	}
	last, err := s.repo.StatsIn(ctx, MonthWindow(s.now(), s.loc, -1))
	if err != nil {
		return dash, err
	}
	dash.ThisMonth, dash.LastMonth = this.TotalAmount, last.TotalAmount
	dash.MonthChange = PercentChange(dash.LastMonth, dash.ThisMonth)

	hours, err := s.Hourly(ctx)
	if err != nil {
		return dash, err
	}
	dash.PeakHour = peak(hours[:])
	dash.PeakHourBucket = hours[dash.PeakHour]

	days, err := s.Weekdays(ctx)
	if err != nil {
		return dash, err
	}
	dash.PeakDay = days[peak(days[:])]
	return dash, nil
}

// peak is the index of the largest total; ties keep the earliest.
func peak(b []Bucket) int {
	best := 0
	for i := range b {
		if b[i].Total > b[best].Total {
			best = i
		}
	}
	return best
}

// PercentChange from prev to cur, rounded to one decimal. Zero when prev is zero.
func PercentChange(prev, cur int64) float64 {
	if prev <= 0 {
		return 0
	}
	return decimal.NewFromInt(cur - prev).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(prev)).
		Round(1).
		InexactFloat64()
}

// Bar draws width cells in proportion value/max.
func Bar(value, max int64, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	return utils.ProgressBar(float64(value)*100/float64(max), width)
}

// TodayWindow is the local calendar day containing now.
func TodayWindow(now time.Time, loc *time.Location) store.Window {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return store.Window{From: from, To: from.AddDate(0, 0, 1)}
}

// LastDaysWindow covers the n*24h before now.
func LastDaysWindow(now time.Time, days int) store.Window {
	return store.Window{From: now.AddDate(0, 0, -days), To: now.Add(time.Nanosecond)}
}

// MonthWindow is the local calendar month offset months from the one containing now.
func MonthWindow(now time.Time, loc *time.Location, offset int) store.Window {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month()+time.Month(offset), 1, 0, 0, 0, 0, loc)
	return store.Window{From: from, To: from.AddDate(0, 1, 0)}
}
