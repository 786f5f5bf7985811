package models

import (
	"time"
)

type BlacklistWord struct {
	Word    string    `gorm:"column:word;primaryKey;size:100" json:"word"`
	AddedBy string    `gorm:"column:added_by;size:255" json:"added_by"`
	AddedAt time.Time `gorm:"column:added_at" json:"added_at"`
}

func (BlacklistWord) TableName() string {
	return "blacklist"
}
