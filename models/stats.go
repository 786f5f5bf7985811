package models

// LeaderboardEntry is a derived row: one donor and the sum of their donations.
type LeaderboardEntry struct {
	DonorName string `gorm:"column:donor_name" json:"donor_name"`
	Total     int64  `gorm:"column:total" json:"total"`
}

// Stats aggregates a window of donations.
type Stats struct {
	TotalAmount       int64 `gorm:"column:total_amount" json:"total_amount"`
	TotalDonors       int64 `gorm:"column:total_donors" json:"total_donors"`
	TotalTransactions int64 `gorm:"column:total_transactions" json:"total_transactions"`
}

// AmountStats holds average/max/min over all donations.
type AmountStats struct {
	Average float64 `gorm:"column:average_amount" json:"average_amount"`
	Max     int64   `gorm:"column:max_amount" json:"max_amount"`
	Min     int64   `gorm:"column:min_amount" json:"min_amount"`
}
