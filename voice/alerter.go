package voice

import (
	"net/http"
	"time"
)

// Presencer reports whether an audio presence is active.
type Presencer interface {
	InVoice() bool
}

type AlerterConfig struct {
	SoundFile string
	Sound     bool
	TTS       bool
	Lang      string
}

// Alerter turns a donation announcement into queued tracks.
type Alerter struct {
	cfg      AlerterConfig
	queue    *Queue
	presence Presencer
	client   *http.Client
}

func NewAlerter(cfg AlerterConfig, queue *Queue, presence Presencer) *Alerter {
	if cfg.Lang == "" {
		cfg.Lang = "id"
	}
	return &Alerter{
		cfg:      cfg,
		queue:    queue,
		presence: presence,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Active reports whether announcements would be heard.
func (a *Alerter) Active() bool {
	return a.presence.InVoice() && (a.cfg.Sound || a.cfg.TTS)
}

// Announce enqueues the sound alert followed by the speech chunks as one group.
// speak=false plays only the sound alert.
func (a *Alerter) Announce(speech string, speak bool) {
	var tracks []Track
	if a.cfg.Sound && a.cfg.SoundFile != "" {
		tracks = append(tracks, FileTrack{Path: a.cfg.SoundFile})
	}
	if a.cfg.TTS && speak {
		for _, part := range Chunk(speech, MaxTTSChunk) {
			tracks = append(tracks, TTSTrack{Text: part, Lang: a.cfg.Lang, Client: a.client})
		}
	}
	a.queue.Enqueue(tracks...)
}
