package models

import (
	"time"
)

// Donation is a persisted contribution. Rows are inserted once and never updated.
type Donation struct {
	ID string `gorm:"column:id;primaryKey" json:"id"`

	DonorName string `gorm:"column:donor_name;not null;index" json:"donor_name"`
	Amount    int64  `gorm:"column:amount;not null" json:"amount"` // Rupiah
	Message   string `gorm:"column:message;type:text" json:"message"`

	Timestamp time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`
}

// TableName mengembalikan nama tabel yang benar
func (Donation) TableName() string {
	return "donations"
}
