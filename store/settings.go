package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSetting returns the raw value for key. ok is false when the key is absent.
func (s *Store) GetSetting(ctx context.Context, key string) (value []byte, ok bool, err error) {
	var row models.Setting
	err = s.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get setting %s: %w", key, err)
	}
	if len(row.Value) == 0 {
		return nil, false, nil
	}
	return row.Value, true, nil
}

// PutSetting upserts key, replacing any previous value entirely.
func (s *Store) PutSetting(ctx context.Context, key string, value []byte) error {
	row := models.Setting{Key: key, Value: value, UpdatedAt: s.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(map[string]any{"key": key}).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
