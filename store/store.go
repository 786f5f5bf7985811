// Package store is the persistence layer: donations, settings and blacklist
// words on top of gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB

	mu   sync.Mutex
	last time.Time

	// Now is the clock used for server-assigned timestamps.
	Now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, Now: time.Now}
}

// DB exposes the gorm handle for callers that need a transaction.
func (s *Store) DB() *gorm.DB { return s.db }

// AddDonation inserts d once. The timestamp is assigned here and never goes
// backwards in insertion order. inserted is false when the id already exists;
// the stored row is left untouched in that case.
func (s *Store) AddDonation(ctx context.Context, d *models.Donation) (inserted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.Now().UTC().Truncate(time.Millisecond)
	if ts.Before(s.last) {
		ts = s.last
	}
	d.Timestamp = ts

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(d)
	if res.Error != nil {
		return false, fmt.Errorf("insert donation %s: %w", d.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.last = ts
	return true, nil
}

// GetDonation loads a donation by id.
func (s *Store) GetDonation(ctx context.Context, id string) (models.Donation, bool, error) {
	var d models.Donation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, false, nil
	}
	if err != nil {
		return d, false, fmt.Errorf("get donation %s: %w", id, err)
	}
	return d, true, nil
}

// RecentDonations returns the newest donations first.
func (s *Store) RecentDonations(ctx context.Context, limit int) ([]models.Donation, error) {
	var out []models.Donation
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("rowid DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent donations: %w", err)
	}
	return out, nil
}

// DonationsBetween returns donations with from <= timestamp < to, oldest first.
func (s *Store) DonationsBetween(ctx context.Context, from, to time.Time) ([]models.Donation, error) {
	var out []models.Donation
	err := s.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp < ?", from.UTC(), to.UTC()).
		Order("timestamp ASC").
		Order("rowid ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("donations between: %w", err)
	}
	return out, nil
}
