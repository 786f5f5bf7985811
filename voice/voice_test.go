package voice

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTrack struct {
	name string
	err  error
}

func (m memTrack) Name() string { return m.name }

func (m memTrack) Open(context.Context) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.name)), nil
}

type recordingPlayer struct {
	mu      sync.Mutex
	played  []string
	active  int32
	overlap bool
	failOn  string
	delay   time.Duration
}

func (p *recordingPlayer) Play(_ context.Context, audio io.Reader) error {
	if atomic.AddInt32(&p.active, 1) > 1 {
		p.overlap = true
	}
	defer atomic.AddInt32(&p.active, -1)

	b, _ := io.ReadAll(audio)
	time.Sleep(p.delay)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, string(b))
	if string(b) == p.failOn {
		return errors.New("playback failed")
	}
	return nil
}

func (p *recordingPlayer) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

func TestQueuePlaysInOrderAndSkipsFailures(t *testing.T) {
	player := &recordingPlayer{failOn: "b", delay: 5 * time.Millisecond}
	q := NewQueue(player)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	q.Enqueue(memTrack{name: "a"}, memTrack{name: "b"}, memTrack{name: "broken", err: errors.New("no file")}, memTrack{name: "c"})
	q.Enqueue(memTrack{name: "d"})

	require.Eventually(t, func() bool { return len(player.snapshot()) == 4 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c", "d"}, player.snapshot())
	assert.False(t, player.overlap)
	require.Eventually(t, func() bool { return !q.Playing() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestQueueGroupsStayContiguous(t *testing.T) {
	player := &recordingPlayer{}
	q := NewQueue(player)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for _, g := range []string{"x", "y", "z"} {
		wg.Add(1)
		go func(g string) {
			defer wg.Done()
			q.Enqueue(memTrack{name: g + "1"}, memTrack{name: g + "2"}, memTrack{name: g + "3"})
		}(g)
	}
	wg.Wait()
	go q.Run(ctx)

	require.Eventually(t, func() bool { return len(player.snapshot()) == 9 }, 2*time.Second, 5*time.Millisecond)
	played := player.snapshot()
	for i := 0; i < 9; i += 3 {
		g := played[i][:1]
		assert.Equal(t, []string{g + "1", g + "2", g + "3"}, played[i:i+3])
	}
}

func TestChunk(t *testing.T) {
	assert.Nil(t, Chunk("   ", 10))
	assert.Equal(t, []string{"halo"}, Chunk(" halo ", 10))
	assert.Equal(t, []string{"satu dua", "tiga"}, Chunk("satu dua tiga", 10))
	assert.Equal(t, []string{"satu,dua", "tiga"}, Chunk("satu,dua tiga", 8))
	assert.Equal(t, []string{"satu,", "duatiga"}, Chunk("satu,duatiga", 8))
	assert.Equal(t, []string{"abcdefghij", "klm"}, Chunk("abcdefghijklm", 10))
	assert.Equal(t, []string{"tanpa batas"}, Chunk(" tanpa batas ", 0))
	assert.Equal(t, []string{"tanpa batas"}, Chunk("tanpa batas", -5))
	assert.Nil(t, Chunk("", 0))

	long := strings.Repeat("kata ", 100)
	for _, part := range Chunk(long, MaxTTSChunk) {
		assert.LessOrEqual(t, len([]rune(part)), MaxTTSChunk)
		assert.False(t, strings.HasPrefix(part, " "))
	}
	assert.Equal(t, strings.TrimSpace(long), strings.Join(Chunk(long, MaxTTSChunk), " "))
}

func TestTTSURL(t *testing.T) {
	u := TTSURL(ttsEndpoint, "Budi donasi", "id")
	assert.True(t, strings.HasPrefix(u, ttsEndpoint+"?"))
	assert.Contains(t, u, "q=Budi+donasi")
	assert.Contains(t, u, "tl=id")
	assert.Contains(t, u, "client=tw-ob")
	assert.Contains(t, u, "textlen=11")
}

func TestTTSTrackOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "gagal" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("mp3:" + r.URL.Query().Get("q")))
	}))
	defer srv.Close()

	rc, err := TTSTrack{Text: "halo", Lang: "id", Endpoint: srv.URL}.Open(context.Background())
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "mp3:halo", string(b))

	_, err = TTSTrack{Text: "gagal", Lang: "id", Endpoint: srv.URL}.Open(context.Background())
	assert.Error(t, err)
}

type fakePresence bool

func (f fakePresence) InVoice() bool { return bool(f) }

func TestAlerterAnnounce(t *testing.T) {
	q := NewQueue(&recordingPlayer{})
	a := NewAlerter(AlerterConfig{SoundFile: "alert.mp3", Sound: true, TTS: true}, q, fakePresence(true))
	require.True(t, a.Active())

	a.Announce("Budi donasi 10 ribu rupiah.", true)
	assert.Equal(t, 2, q.Len())

	a.Announce("tidak dibacakan", false)
	assert.Equal(t, 3, q.Len())

	off := NewAlerter(AlerterConfig{Sound: true}, NewQueue(&recordingPlayer{}), fakePresence(false))
	assert.False(t, off.Active())
}

func TestPresencePlayWithoutConnection(t *testing.T) {
	p := NewPresence(nil, "guild")
	assert.False(t, p.InVoice())
	assert.False(t, p.Leave())
	assert.ErrorIs(t, p.Play(context.Background(), strings.NewReader("x")), ErrNotConnected)
}

// slowJoiner hands out a connection that turns ready only when released.
type slowJoiner struct {
	vc      *discordgo.VoiceConnection
	started chan struct{}
	release chan struct{}
}

func (j *slowJoiner) ChannelVoiceJoin(_, _ string, _, _ bool) (*discordgo.VoiceConnection, error) {
	go func() {
		<-j.release
		j.vc.Lock()
		j.vc.Ready = true
		j.vc.Unlock()
	}()
	close(j.started)
	return j.vc, nil
}

func TestJoinDoesNotBlockInVoice(t *testing.T) {
	j := &slowJoiner{
		vc:      &discordgo.VoiceConnection{},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := NewPresence(j, "guild")

	joined := make(chan error, 1)
	go func() { joined <- p.Join(context.Background(), "", "voice") }()
	<-j.started

	answered := make(chan bool, 1)
	go func() { answered <- p.InVoice() }()
	select {
	case in := <-answered:
		assert.False(t, in)
	case <-time.After(time.Second):
		t.Fatal("InVoice waited for the pending join")
	}

	close(j.release)
	require.NoError(t, <-joined)
	assert.True(t, p.InVoice())
}
