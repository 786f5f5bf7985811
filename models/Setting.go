package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting stores a key/value configuration entry. Value is a versioned JSON
// document, see package settings for the per-key schema.
type Setting struct {
	Key       string         `gorm:"column:key;primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
