package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"
)

// JoinTimeout bounds how long Join waits for the voice connection to be ready.
const JoinTimeout = 30 * time.Second

var (
	ErrNotConnected = errors.New("not connected to a voice channel")
	ErrJoinTimeout  = errors.New("timed out waiting for voice connection")
)

// Joiner opens voice connections. *discordgo.Session implements it.
type Joiner interface {
	ChannelVoiceJoin(guildID, channelID string, mute, deaf bool) (*discordgo.VoiceConnection, error)
}

// Presence is the bot's single voice connection in one guild. It also plays
// audio for the Queue.
type Presence struct {
	session Joiner
	guildID string

	// joinMu serializes Join; mu only guards vc so InVoice never waits on a join.
	joinMu sync.Mutex
	mu     sync.Mutex
	vc     *discordgo.VoiceConnection
}

func NewPresence(session Joiner, guildID string) *Presence {
	return &Presence{session: session, guildID: guildID}
}

// Join connects to channelID, replacing any current connection. Not becoming
// ready within JoinTimeout is a failure.
func (p *Presence) Join(ctx context.Context, guildID, channelID string) error {
	if guildID == "" {
		guildID = p.guildID
	}

	ctx, cancel := context.WithTimeout(ctx, JoinTimeout)
	defer cancel()

	p.joinMu.Lock()
	defer p.joinMu.Unlock()

	if old := p.swap(nil); old != nil {
		disconnect(old)
	}

	vc, err := p.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		if vc != nil {
			_ = vc.Disconnect()
		}
		return fmt.Errorf("join voice %s: %w", channelID, err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for !ready(vc) {
		select {
		case <-ctx.Done():
			_ = vc.Disconnect()
			return ErrJoinTimeout
		case <-ticker.C:
		}
	}

	p.swap(vc)
	slog.Info("🔊 Bot bergabung ke voice channel", "channel_id", channelID)
	return nil
}

// swap installs vc and returns the previous connection.
func (p *Presence) swap(vc *discordgo.VoiceConnection) *discordgo.VoiceConnection {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.vc
	p.vc = vc
	return old
}

func ready(vc *discordgo.VoiceConnection) bool {
	vc.RLock()
	defer vc.RUnlock()
	return vc.Ready
}

// Leave disconnects; it reports false when there was nothing to leave.
func (p *Presence) Leave() bool {
	old := p.swap(nil)
	if old == nil {
		return false
	}
	disconnect(old)
	slog.Info("🔇 Bot keluar dari voice channel")
	return true
}

func disconnect(vc *discordgo.VoiceConnection) {
	if err := vc.Disconnect(); err != nil {
		slog.Warn("voice disconnect", "err", err)
	}
}

func (p *Presence) InVoice() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc != nil
}

func (p *Presence) conn() *discordgo.VoiceConnection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc
}

// Play encodes audio to opus with ffmpeg and streams it until it ends.
func (p *Presence) Play(ctx context.Context, audio io.Reader) error {
	vc := p.conn()
	if vc == nil {
		return ErrNotConnected
	}

	opts := *dca.StdEncodeOptions
	opts.RawOutput = true
	opts.Bitrate = 96
	opts.Application = dca.AudioApplicationLowDelay

	enc, err := dca.EncodeMem(audio, &opts)
	if err != nil {
		return fmt.Errorf("encode audio: %w", err)
	}
	defer enc.Cleanup()

	if err := vc.Speaking(true); err != nil {
		slog.Warn("voice speaking on", "err", err)
	}
	defer func() {
		if err := vc.Speaking(false); err != nil {
			slog.Warn("voice speaking off", "err", err)
		}
	}()

	done := make(chan error, 1)
	dca.NewStream(enc, vc, done)
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("stream audio: %w", err)
		}
		return nil
	case <-ctx.Done():
		enc.Stop()
		return ctx.Err()
	}
}
