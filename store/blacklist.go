package store

import (
	"context"
	"fmt"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"gorm.io/gorm/clause"
)

// AddBlacklistWord inserts word; an existing word keeps its original attribution.
func (s *Store) AddBlacklistWord(ctx context.Context, word, addedBy string) error {
	row := models.BlacklistWord{Word: word, AddedBy: addedBy, AddedAt: s.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "word"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("add blacklist word: %w", err)
	}
	return nil
}

func (s *Store) RemoveBlacklistWord(ctx context.Context, word string) error {
	if err := s.db.WithContext(ctx).Where("word = ?", word).Delete(&models.BlacklistWord{}).Error; err != nil {
		return fmt.Errorf("remove blacklist word: %w", err)
	}
	return nil
}

func (s *Store) BlacklistWords(ctx context.Context) ([]models.BlacklistWord, error) {
	var rows []models.BlacklistWord
	if err := s.db.WithContext(ctx).Order("word ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list blacklist: %w", err)
	}
	return rows, nil
}
