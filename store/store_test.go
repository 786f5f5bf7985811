package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.ConnectDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDB(db) })
	return New(db)
}

func add(t *testing.T, s *Store, id, name string, amount int64) {
	t.Helper()
	ok, err := s.AddDonation(context.Background(), &models.Donation{ID: id, DonorName: name, Amount: amount})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAddDonationDuplicateIsIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	add(t, s, "d1", "Budi", 10000)

	ok, err := s.AddDonation(ctx, &models.Donation{ID: "d1", DonorName: "Ani", Amount: 99999})
	require.NoError(t, err)
	assert.False(t, ok)

	d, found, err := s.GetDonation(ctx, "d1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Budi", d.DonorName)
	assert.Equal(t, int64(10000), d.Amount)

	st, err := s.TotalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{TotalAmount: 10000, TotalDonors: 1, TotalTransactions: 1}, st)
}

func TestTimestampsNeverGoBackwards(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Hour)}
	s.Now = func() time.Time {
		now := clock[0]
		if len(clock) > 1 {
			clock = clock[1:]
		}
		return now
	}

	add(t, s, "a", "A", 1000)
	add(t, s, "b", "B", 2000)

	recent, err := s.RecentDonations(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].ID)
	assert.Equal(t, "a", recent[1].ID)
	assert.True(t, recent[0].Timestamp.Equal(base))
	assert.True(t, recent[1].Timestamp.Equal(base))
}

func TestLeaderboardTieKeepsFirstSeenDonor(t *testing.T) {
	s := newTestStore(t)

	add(t, s, "1", "A", 50000)
	add(t, s, "2", "B", 70000)
	add(t, s, "3", "A", 20000)

	rows, err := s.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []models.LeaderboardEntry{
		{DonorName: "A", Total: 70000},
		{DonorName: "B", Total: 70000},
	}, rows)

	top, ok, err := s.TopDonor(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A", top.DonorName)
}

func TestLeaderboardLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		add(t, s, fmt.Sprint(i), fmt.Sprintf("donor%d", i), int64(1000*(i+1)))
	}

	rows, err := s.Leaderboard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "donor4", rows[0].DonorName)
	assert.Equal(t, "donor2", rows[2].DonorName)
}

func TestEmptyAggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.TotalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, st)

	rows, err := s.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, ok, err := s.TopDonor(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	am, err := s.AmountStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AmountStats{}, am)
}

func TestStatsInWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	now := day.Add(-time.Hour)
	s.Now = func() time.Time { return now }
	add(t, s, "old", "Old", 5000)

	now = day.Add(2 * time.Hour)
	add(t, s, "n1", "Budi", 10000)
	now = day.Add(3 * time.Hour)
	add(t, s, "n2", "Budi", 20000)

	w := Window{From: day, To: day.Add(24 * time.Hour)}
	st, err := s.StatsIn(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{TotalAmount: 30000, TotalDonors: 1, TotalTransactions: 2}, st)

	rows, err := s.LeaderboardIn(ctx, w, 5)
	require.NoError(t, err)
	assert.Equal(t, []models.LeaderboardEntry{{DonorName: "Budi", Total: 30000}}, rows)

	list, err := s.DonationsBetween(ctx, w.From, w.To)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n1", list[0].ID)

	all, err := s.TotalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(35000), all.TotalAmount)
}

func TestAmountStats(t *testing.T) {
	s := newTestStore(t)
	add(t, s, "1", "A", 10000)
	add(t, s, "2", "B", 30000)

	am, err := s.AmountStats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 20000, am.Average, 0.001)
	assert.Equal(t, int64(30000), am.Max)
	assert.Equal(t, int64(10000), am.Min)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.GetSetting(ctx, "donation_goal")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutSetting(ctx, "donation_goal", []byte(`{"v":1}`)))
	require.NoError(t, s.PutSetting(ctx, "donation_goal", []byte(`{"v":2}`)))

	v, ok, err := s.GetSetting(ctx, "donation_goal")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(v))

	require.NoError(t, s.DeleteSetting(ctx, "donation_goal"))
	require.NoError(t, s.DeleteSetting(ctx, "donation_goal"))
	_, ok, err = s.GetSetting(ctx, "donation_goal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlacklistWords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddBlacklistWord(ctx, "kasar", "admin1"))
	require.NoError(t, s.AddBlacklistWord(ctx, "kasar", "admin2"))
	require.NoError(t, s.AddBlacklistWord(ctx, "bodoh", "admin1"))

	words, err := s.BlacklistWords(ctx)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "bodoh", words[0].Word)
	assert.Equal(t, "admin1", words[1].AddedBy)

	require.NoError(t, s.RemoveBlacklistWord(ctx, "kasar"))
	require.NoError(t, s.RemoveBlacklistWord(ctx, "kasar"))
	words, err = s.BlacklistWords(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestMissingSettingIsNotLogged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, ok, err := s.GetSetting(ctx, "donation_goal")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, buf.String(), "record not found")

	// real query errors still reach the slog handler
	require.Error(t, s.db.WithContext(ctx).Exec("SELECT * FROM tabel_tidak_ada").Error)
	assert.Contains(t, buf.String(), `"msg":"gorm"`)
	assert.Contains(t, buf.String(), "tabel_tidak_ada")
}
