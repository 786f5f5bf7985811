package websocket

import (
	"context"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"
)

type DonationEvent struct {
	ID              string `json:"id"`
	Donor           string `json:"donor"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Message         string `json:"message,omitempty"`
	Media           string `json:"media,omitempty"`
	Milestone       string `json:"milestone,omitempty"`
	ThankYou        string `json:"thank_you,omitempty"`
	IsTest          bool   `json:"is_test"`
}

type GoalEvent struct {
	Description string  `json:"description"`
	Target      int64   `json:"target"`
	Collected   int64   `json:"collected"`
	Percentage  float64 `json:"percentage"`
}

// Overlay is the pipeline sink that pushes events to browser overlays.
type Overlay struct {
	manager *Manager
}

func NewOverlay(m *Manager) *Overlay {
	return &Overlay{manager: m}
}

func (o *Overlay) Name() string { return "overlay" }

func (o *Overlay) NotifyDonation(_ context.Context, n donation.Notification) error {
	ev := DonationEvent{
		ID:              n.Donation.ID,
		Donor:           n.Donation.DonorName,
		Amount:          n.Donation.Amount,
		AmountFormatted: utils.FormatRupiah(n.Donation.Amount),
		Message:         n.Donation.Message,
		Media:           n.Media,
		ThankYou:        n.ThankYou,
		IsTest:          n.IsTest,
	}
	if n.HasMilestone {
		ev.Milestone = n.Milestone.Label()
	}
	return o.manager.Publish("donation", ev)
}

func (o *Overlay) NotifyGoalReached(_ context.Context, p goals.Progress) error {
	return o.manager.Publish("goal_reached", GoalEvent{
		Description: p.Description,
		Target:      p.Target,
		Collected:   p.CurrentTotal,
		Percentage:  p.Percentage,
	})
}
