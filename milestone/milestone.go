// Package milestone maps a donation amount to its reward tier.
package milestone

import "sort"

type Tier struct {
	Threshold int64
	Emoji     string
	Title     string
}

// Label is the badge shown on a notification, e.g. "💎 DONASI DIAMOND!".
func (t Tier) Label() string {
	return t.Emoji + " " + t.Title
}

// DefaultTiers is sorted by threshold, highest first.
var DefaultTiers = []Tier{
	{Threshold: 500000, Emoji: "💎", Title: "DONASI DIAMOND!"},
	{Threshold: 200000, Emoji: "🌟", Title: "DONASI SUPER!"},
	{Threshold: 100000, Emoji: "⭐", Title: "DONASI BINTANG!"},
	{Threshold: 50000, Emoji: "🔥", Title: "DONASI SPESIAL!"},
}

// Sorted returns a copy of tiers ordered by threshold descending.
func Sorted(tiers []Tier) []Tier {
	out := append([]Tier(nil), tiers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Threshold > out[j].Threshold })
	return out
}

// Classify returns the first tier whose threshold is at most amount.
// tiers must be sorted descending.
func Classify(tiers []Tier, amount int64) (Tier, bool) {
	for _, t := range tiers {
		if amount >= t.Threshold {
			return t, true
		}
	}
	return Tier{}, false
}
