package donation

import (
	"context"
	"log/slog"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/settings"
)

// MinAlert holds the minimum amounts for a chat notification and for speech.
// Below the minimum the donation is still stored and counted.
type MinAlert struct {
	Chat int64 `json:"chat"`
	TTS  int64 `json:"tts"`
}

// LoadMinAlert returns the stored override, or fallback when none is stored.
func LoadMinAlert(ctx context.Context, b settings.Backend, fallback MinAlert) MinAlert {
	m := fallback
	ok, err := settings.Load(ctx, b, settings.KeyMinAlert, &m)
	if err != nil {
		slog.Warn("min alert setting unreadable, using config", "err", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	if m.Chat < 0 {
		m.Chat = 0
	}
	if m.TTS < 0 {
		m.TTS = 0
	}
	return m
}

func SaveMinAlert(ctx context.Context, b settings.Backend, m MinAlert) error {
	return settings.Save(ctx, b, settings.KeyMinAlert, m)
}
