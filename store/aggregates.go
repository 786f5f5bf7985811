package store

import (
	"context"
	"fmt"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"gorm.io/gorm"
)

const statsSelect = "COALESCE(SUM(amount), 0) AS total_amount, " +
	"COUNT(DISTINCT donor_name) AS total_donors, " +
	"COUNT(*) AS total_transactions"

// Window is a half-open time range [From, To). The zero Window means all time.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) apply(q *gorm.DB) *gorm.DB {
	if w.From.IsZero() && w.To.IsZero() {
		return q
	}
	return q.Where("timestamp >= ? AND timestamp < ?", w.From.UTC(), w.To.UTC())
}

// TotalStats aggregates every persisted donation.
func (s *Store) TotalStats(ctx context.Context) (models.Stats, error) {
	return s.StatsIn(ctx, Window{})
}

// StatsIn aggregates donations inside w.
func (s *Store) StatsIn(ctx context.Context, w Window) (models.Stats, error) {
	var st models.Stats
	q := s.db.WithContext(ctx).Model(&models.Donation{}).Select(statsSelect)
	if err := w.apply(q).Scan(&st).Error; err != nil {
		return st, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

// TotalAmount is the live sum over all donations.
func (s *Store) TotalAmount(ctx context.Context) (int64, error) {
	st, err := s.TotalStats(ctx)
	if err != nil {
		return 0, err
	}
	return st.TotalAmount, nil
}

// Leaderboard returns donors ordered by total descending. Ties keep the order
// in which the donor first appeared.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return s.LeaderboardIn(ctx, Window{}, limit)
}

// LeaderboardIn is Leaderboard restricted to w.
func (s *Store) LeaderboardIn(ctx context.Context, w Window, limit int) ([]models.LeaderboardEntry, error) {
	var rows []models.LeaderboardEntry
	q := s.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("donor_name, SUM(amount) AS total")
	err := w.apply(q).
		Group("donor_name").
		Order("total DESC").
		Order("MIN(rowid) ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return rows, nil
}

// TopDonor returns the all-time leader, if any donation exists.
func (s *Store) TopDonor(ctx context.Context) (models.LeaderboardEntry, bool, error) {
	rows, err := s.Leaderboard(ctx, 1)
	if err != nil || len(rows) == 0 {
		return models.LeaderboardEntry{}, false, err
	}
	return rows[0], true, nil
}

// AmountStats returns average, max and min donation amounts.
func (s *Store) AmountStats(ctx context.Context) (models.AmountStats, error) {
	var st models.AmountStats
	err := s.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("COALESCE(AVG(amount), 0) AS average_amount, COALESCE(MAX(amount), 0) AS max_amount, COALESCE(MIN(amount), 0) AS min_amount").
		Scan(&st).Error
	if err != nil {
		return st, fmt.Errorf("amount stats: %w", err)
	}
	return st, nil
}
