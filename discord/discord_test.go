package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/analytics"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/filter"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/jobs"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/milestone"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channelID string
	msg       *discordgo.MessageSend
}

type fakeMessenger struct {
	sent []sentMessage
	err  error
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sentMessage{channelID, data})
	return &discordgo.Message{}, nil
}

type fakeScheduler struct{ mode jobs.Mode }

func (f *fakeScheduler) Configure(_ context.Context, m jobs.Mode) error { f.mode = m; return nil }
func (f *fakeScheduler) Mode() jobs.Mode                                { return f.mode }

type fakeVoice struct {
	joined  string
	joinErr error
	in      bool
}

func (f *fakeVoice) Join(_ context.Context, guildID, channelID string) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joined, f.in = guildID+"/"+channelID, true
	return nil
}

func (f *fakeVoice) Leave() bool {
	was := f.in
	f.in = false
	return was
}

func (f *fakeVoice) InVoice() bool { return f.in }

type fakeChannels map[string]*discordgo.Channel

func (f fakeChannels) Channel(id string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if ch, ok := f[id]; ok {
		return ch, nil
	}
	return nil, errors.New("unknown channel")
}

type fakePipeline struct {
	payloads []donation.Payload
	tests    []bool
}

func (f *fakePipeline) Handle(_ context.Context, p donation.Payload, isTest bool) donation.Result {
	f.payloads = append(f.payloads, p)
	f.tests = append(f.tests, isTest)
	return donation.Result{}
}

type harness struct {
	bot       *Bot
	store     *store.Store
	scheduler *fakeScheduler
	voice     *fakeVoice
	pipeline  *fakePipeline
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.ConnectDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDB(db) })

	st := store.New(db)
	f := filter.New(st)
	require.NoError(t, f.Load(context.Background()))

	h := &harness{
		store:     st,
		scheduler: &fakeScheduler{mode: jobs.ModeOff},
		voice:     &fakeVoice{},
		pipeline:  &fakePipeline{},
	}
	h.bot = NewBot(Deps{
		Store:     st,
		Filter:    f,
		Goals:     goals.NewTracker(st),
		ThankYou:  thankyou.NewService(st, time.UTC),
		Analytics: analytics.NewService(st, time.UTC),
		Digest:    NewDigest(st, time.UTC),
		Scheduler: h.scheduler,
		Pipeline:  h.pipeline,
		Voice:     h.voice,
		Channels: fakeChannels{
			"vc1":   {ID: "vc1", GuildID: "g1", Name: "Stream", Type: discordgo.ChannelTypeGuildVoice},
			"text1": {ID: "text1", GuildID: "g1", Name: "umum", Type: discordgo.ChannelTypeGuildText},
		},
		SaweriaUsername:  "kreator",
		SummaryChannelID: "sum1",
	})
	return h
}

func (h *harness) donate(t *testing.T, id, name string, amount int64) {
	t.Helper()
	ok, err := h.store.AddDonation(context.Background(), &models.Donation{ID: id, DonorName: name, Amount: amount})
	require.NoError(t, err)
	require.True(t, ok)
}

func admin(cmd, sub string, opts map[string]interface{}) Invocation {
	return Invocation{Command: cmd, Subcommand: sub, Options: opts, IsAdmin: true, UserTag: "admin", GuildID: "g1"}
}

func TestDonationMessageMilestone(t *testing.T) {
	at := time.Unix(1700000000, 0)
	n := donation.Notification{
		Donation:     models.Donation{ID: "d1", DonorName: "Budi", Amount: 100000},
		Milestone:    milestone.DefaultTiers[2],
		HasMilestone: true,
		ThankYou:     "Terima kasih Budi!",
	}

	msg := DonationMessage(n, at)
	require.Len(t, msg.Embeds, 1)
	e := msg.Embeds[0]
	assert.Equal(t, "@everyone", msg.Content)
	assert.Equal(t, colorGold, e.Color)
	assert.Equal(t, "⭐ DONASI BINTANG!", e.Title)
	assert.Equal(t, "Terima kasih Budi!", e.Description)
	assert.Equal(t, "Rp 100.000", e.Fields[0].Value)
	assert.Equal(t, "<t:1700000000:R>", e.Fields[1].Value)

	n.IsTest = true
	msg = DonationMessage(n, at)
	assert.Empty(t, msg.Content)
	assert.Equal(t, "⚠️ INI ADALAH TEST DONASI", msg.Embeds[0].Footer.Text)
}

func TestDonationMessageFilteredAndMedia(t *testing.T) {
	n := donation.Notification{
		Donation: models.Donation{DonorName: "Ani", Amount: 5000, Message: "dasar ****"},
		Filtered: true,
		Media:    "https://cdn.example/x.gif",
	}
	e := DonationMessage(n, time.Now()).Embeds[0]

	assert.Equal(t, colorOrange, e.Color)
	assert.Equal(t, "🎉 Donasi Baru!", e.Title)
	assert.Equal(t, "**Ani** telah berdonasi!", e.Description)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "💬 Pesan (difilter)", e.Fields[2].Name)
	assert.Equal(t, "dasar ****", e.Fields[2].Value)
	require.NotNil(t, e.Image)
	assert.Equal(t, "https://cdn.example/x.gif", e.Image.URL)
}

func TestSinkPostsToChannel(t *testing.T) {
	m := &fakeMessenger{}
	s := NewSink(m, "chan1")

	require.NoError(t, s.NotifyDonation(context.Background(), donation.Notification{Donation: models.Donation{DonorName: "A", Amount: 1000}}))
	require.NoError(t, s.NotifyGoalReached(context.Background(), goals.Progress{Goal: goals.Goal{Target: 100000, Description: "Mic baru"}, CurrentTotal: 110000}))

	require.Len(t, m.sent, 2)
	assert.Equal(t, "chan1", m.sent[0].channelID)
	goal := m.sent[1].msg
	assert.Equal(t, "@everyone", goal.Content)
	assert.Equal(t, "🎊 GOAL TERCAPAI!", goal.Embeds[0].Title)
	assert.Contains(t, goal.Embeds[0].Description, "Mic baru")

	m.err = errors.New("boom")
	assert.Error(t, s.NotifyDonation(context.Background(), donation.Notification{}))
}

type fakeGuild struct {
	members []*discordgo.Member
	added   []string
	removed []string
}

func (f *fakeGuild) GuildMembers(_, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	if after != "" {
		return nil, nil
	}
	return f.members, nil
}

func (f *fakeGuild) GuildMemberRoleAdd(_, userID, _ string, _ ...discordgo.RequestOption) error {
	f.added = append(f.added, userID)
	return nil
}

func (f *fakeGuild) GuildMemberRoleRemove(_, userID, _ string, _ ...discordgo.RequestOption) error {
	f.removed = append(f.removed, userID)
	return nil
}

func member(id, username, nick string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id, Username: username}, Nick: nick, Roles: roles}
}

func TestRoleUpdaterMovesRole(t *testing.T) {
	g := &fakeGuild{members: []*discordgo.Member{
		member("1", "ani", "", "top"),
		member("2", "budi_gaming", "Budi", "other"),
		member("3", "caca", ""),
	}}
	r := NewRoleUpdater(g, "g1", "top")

	require.NoError(t, r.UpdateTopDonor(context.Background(), models.LeaderboardEntry{DonorName: "budi", Total: 70000}))
	assert.Equal(t, []string{"1"}, g.removed)
	assert.Equal(t, []string{"2"}, g.added)
}

func TestRoleUpdaterKeepsRoleOnCurrentHolder(t *testing.T) {
	g := &fakeGuild{members: []*discordgo.Member{member("1", "ani", "", "top")}}
	r := NewRoleUpdater(g, "g1", "top")

	require.NoError(t, r.UpdateTopDonor(context.Background(), models.LeaderboardEntry{DonorName: "Ani"}))
	assert.Empty(t, g.removed)
	assert.Empty(t, g.added)

	// unconfigured updater is a no-op
	require.NoError(t, NewRoleUpdater(g, "", "").UpdateTopDonor(context.Background(), models.LeaderboardEntry{DonorName: "x"}))
}

// pagedGuild serves members page by page, keyed by the after cursor.
type pagedGuild struct {
	fakeGuild
	pages   map[string][]*discordgo.Member
	cursors []string
}

func (f *pagedGuild) GuildMembers(_, after string, _ int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.cursors = append(f.cursors, after)
	return f.pages[after], nil
}

func TestRoleUpdaterPaginatesPastMembersWithoutUser(t *testing.T) {
	first := make([]*discordgo.Member, 0, memberPageSize)
	for i := 0; i < memberPageSize-1; i++ {
		first = append(first, member(fmt.Sprint("m", i), fmt.Sprint("user", i), ""))
	}
	first = append(first, &discordgo.Member{Nick: "tanpa user"})

	last := fmt.Sprint("m", memberPageSize-2)
	g := &pagedGuild{pages: map[string][]*discordgo.Member{
		"":   first,
		last: {member("w", "budi", "")},
	}}
	r := NewRoleUpdater(g, "g1", "top")

	require.NoError(t, r.UpdateTopDonor(context.Background(), models.LeaderboardEntry{DonorName: "Budi"}))
	assert.Equal(t, []string{"", last}, g.cursors)
	assert.Equal(t, []string{"w"}, g.added)
}

func TestAdminCommandsRequireAdmin(t *testing.T) {
	h := newHarness(t)
	inv := admin("setgoal", "", map[string]interface{}{"target": int64(100000)})
	inv.IsAdmin = false

	r := h.bot.Handle(context.Background(), inv)
	assert.True(t, r.Ephemeral)
	assert.Contains(t, r.Content, "hanya untuk admin")

	_, ok, err := goals.NewTracker(h.store).GetGoal(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnknownCommandAndPanicStillReply(t *testing.T) {
	h := newHarness(t)
	r := h.bot.Handle(context.Background(), Invocation{Command: "nope"})
	assert.True(t, r.Ephemeral)

	broken := NewBot(Deps{})
	r = broken.Handle(context.Background(), Invocation{Command: "totaldonasi"})
	assert.Equal(t, errorReplyText, r.Content)
	assert.True(t, r.Ephemeral)
}

func TestLeaderboardCommand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, Invocation{Command: "leaderboard"})
	assert.Equal(t, "📊 Belum ada donasi yang tercatat.", r.Content)

	h.donate(t, "1", "A", 50000)
	h.donate(t, "2", "B", 70000)
	h.donate(t, "3", "A", 20000)
	h.donate(t, "4", "C", 1000)

	r = h.bot.Handle(ctx, Invocation{Command: "leaderboard", Options: map[string]interface{}{"jumlah": int64(2)}})
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "🥇 **A** - Rp 70.000\n🥈 **B** - Rp 70.000", r.Embeds[0].Description)
	assert.Equal(t, "Menampilkan 2 donatur teratas", r.Embeds[0].Footer.Text)
}

func TestRecentDonasiCensorsMessages(t *testing.T) {
	h := newHarness(t)
	ok, err := h.store.AddDonation(context.Background(), &models.Donation{ID: "1", DonorName: "A", Amount: 5000, Message: "dasar anjing"})
	require.NoError(t, err)
	require.True(t, ok)

	r := h.bot.Handle(context.Background(), Invocation{Command: "recentdonasi"})
	require.Len(t, r.Embeds, 1)
	assert.Contains(t, r.Embeds[0].Description, "dasar ******")
	assert.NotContains(t, r.Embeds[0].Description, "anjing")
}

func TestGoalCommands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, Invocation{Command: "goal"})
	assert.Equal(t, "❌ Belum ada donation goal yang ditetapkan.", r.Content)

	r = h.bot.Handle(ctx, admin("setgoal", "", map[string]interface{}{"target": int64(0)}))
	assert.Equal(t, "❌ Target harus lebih dari 0.", r.Content)

	h.donate(t, "1", "A", 40000)
	r = h.bot.Handle(ctx, admin("setgoal", "", map[string]interface{}{"target": int64(100000), "deskripsi": "Mic baru"}))
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "Mic baru", r.Embeds[0].Description)

	r = h.bot.Handle(ctx, Invocation{Command: "goal"})
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "🎯 Donation Goal", r.Embeds[0].Title)
	assert.Equal(t, "Rp 60.000", r.Embeds[0].Fields[2].Value)

	h.donate(t, "2", "B", 60000)
	r = h.bot.Handle(ctx, Invocation{Command: "goal"})
	assert.Equal(t, "🎊 Goal Tercapai!", r.Embeds[0].Title)

	r = h.bot.Handle(ctx, admin("resetgoal", "", nil))
	assert.Equal(t, "✅ Donation goal telah direset.", r.Content)
	r = h.bot.Handle(ctx, Invocation{Command: "goal"})
	assert.Empty(t, r.Embeds)
}

func TestSummaryCommand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, Invocation{Command: "summary"})
	assert.Equal(t, "📋 Tidak ada donasi untuk periode ini.", r.Content)

	h.donate(t, "1", "A", 15000)
	r = h.bot.Handle(ctx, Invocation{Command: "summary", Options: map[string]interface{}{"periode": "all"}})
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "📊 Rangkuman Donasi Semua Waktu", r.Embeds[0].Title)
	assert.Equal(t, "Rp 15.000", r.Embeds[0].Fields[0].Value)
}

func TestAutoSummaryConfiguresScheduler(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, admin("autosummary", "", map[string]interface{}{"mode": "both"}))
	assert.Equal(t, jobs.ModeBoth, h.scheduler.mode)
	assert.Contains(t, r.Content, "Harian & Mingguan")
	assert.Contains(t, r.Content, "<#sum1>")

	r = h.bot.Handle(ctx, admin("autosummary", "", map[string]interface{}{"mode": "off"}))
	assert.Equal(t, jobs.ModeOff, h.scheduler.mode)
	assert.Equal(t, "✅ Auto summary telah dinonaktifkan.", r.Content)

	r = h.bot.Handle(ctx, admin("autosummary", "", map[string]interface{}{"mode": "hourly"}))
	assert.Equal(t, jobs.ModeOff, h.scheduler.mode)
	assert.True(t, strings.HasPrefix(r.Content, "❌"))
}

func TestJoinAndLeaveVoice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, admin("joinvc", "", map[string]interface{}{"channel": "text1"}))
	assert.Contains(t, r.Content, "Silakan pilih voice channel")
	assert.Empty(t, h.voice.joined)

	inv := admin("joinvc", "", nil)
	inv.VoiceChannelID = "vc1"
	r = h.bot.Handle(ctx, inv)
	assert.Contains(t, r.Content, "**Stream**")
	assert.Equal(t, "g1/vc1", h.voice.joined)

	r = h.bot.Handle(ctx, admin("leavevc", "", nil))
	assert.Equal(t, "✅ Bot telah keluar dari voice channel.", r.Content)
	r = h.bot.Handle(ctx, admin("leavevc", "", nil))
	assert.Equal(t, "❌ Bot tidak sedang di voice channel.", r.Content)

	h.voice.joinErr = voiceTimeout
	inv.VoiceChannelID = "vc1"
	r = h.bot.Handle(ctx, inv)
	assert.Equal(t, "❌ Gagal bergabung ke voice channel.", r.Content)
}

var voiceTimeout = errors.New("timed out")

func TestTestDonasiRunsPipelineAfterReply(t *testing.T) {
	h := newHarness(t)

	r := h.bot.Handle(context.Background(), admin("testdonasi", "", map[string]interface{}{"nama": "Caca"}))
	assert.Equal(t, "✅ Mengirim test donasi...", r.Content)
	assert.Empty(t, h.pipeline.payloads)

	require.NotNil(t, r.After)
	r.After(context.Background())
	require.Len(t, h.pipeline.payloads, 1)
	assert.Equal(t, []bool{true}, h.pipeline.tests)
	p := h.pipeline.payloads[0]
	assert.Equal(t, "Caca", p.Donator)
	assert.Equal(t, int64(10000), p.Amount)
	assert.True(t, strings.HasPrefix(p.ID, "test_"))
}

func TestBlacklistCommands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, admin("blacklist", "add", map[string]interface{}{"kata": "spam, x"}))
	assert.Contains(t, r.Content, "menambahkan 1 kata")
	assert.Contains(t, r.Content, "`spam`")

	r = h.bot.Handle(ctx, admin("blacklist", "add", map[string]interface{}{"kata": "x"}))
	assert.Equal(t, "❌ Kata harus minimal 2 karakter.", r.Content)

	r = h.bot.Handle(ctx, admin("blacklist", "test", map[string]interface{}{"teks": "this is spam content"}))
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "🚫 Kata Terlarang Terdeteksi", r.Embeds[0].Title)
	assert.Equal(t, "```this is **** content```", r.Embeds[0].Fields[1].Value)

	r = h.bot.Handle(ctx, admin("blacklist", "remove", map[string]interface{}{"kata": "SPAM"}))
	assert.Contains(t, r.Content, "`spam`")

	r = h.bot.Handle(ctx, admin("blacklist", "list", nil))
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, fmt.Sprintf("Total: **%d** kata", len(filter.DefaultTerms)), r.Embeds[0].Description)
}

func TestMinAlertCommands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, admin("minalert", "set", map[string]interface{}{"jumlah": int64(20000)}))
	assert.Equal(t, "✅ Minimum notifikasi Discord: **Rp 20.000**", r.Content)
	r = h.bot.Handle(ctx, admin("minalert", "tts", map[string]interface{}{"jumlah": int64(0)}))
	assert.Equal(t, "✅ Semua donasi akan dibacakan TTS.", r.Content)

	got := donation.LoadMinAlert(ctx, h.store, donation.MinAlert{Chat: 1, TTS: 1})
	assert.Equal(t, donation.MinAlert{Chat: 20000, TTS: 0}, got)

	r = h.bot.Handle(ctx, admin("minalert", "status", nil))
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "Rp 20.000", r.Embeds[0].Fields[0].Value)
	assert.Equal(t, "Semua donasi", r.Embeds[0].Fields[1].Value)
}

func TestThankYouCommands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, admin("thankyou", "set", map[string]interface{}{"tier": "small", "template": "Makasih {NAME}!"}))
	assert.Contains(t, r.Content, "Makasih Donatur Contoh!")

	r = h.bot.Handle(ctx, admin("thankyou", "tier", map[string]interface{}{"tier": "large", "jumlah": int64(20000)}))
	assert.Equal(t, "❌ Threshold medium harus lebih kecil dari large.", r.Content)

	r = h.bot.Handle(ctx, admin("thankyou", "tier", map[string]interface{}{"tier": "medium", "jumlah": int64(20000)}))
	assert.Equal(t, "✅ Threshold **medium** diatur ke Rp 20.000", r.Content)

	r = h.bot.Handle(ctx, admin("thankyou", "settings", nil))
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "🟢 Small (< Rp 20.000)", r.Embeds[0].Fields[0].Name)
	assert.Equal(t, "```Makasih {NAME}!```", r.Embeds[0].Fields[0].Value)

	r = h.bot.Handle(ctx, admin("thankyou", "reset", nil))
	assert.True(t, r.Ephemeral)
	r = h.bot.Handle(ctx, admin("thankyou", "preview", map[string]interface{}{"tier": "small"}))
	assert.Contains(t, r.Embeds[0].Description, "Terima kasih Donatur Contoh!")
}

func TestAnalyticsViews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.bot.Handle(ctx, Invocation{Command: "analytics", Options: map[string]interface{}{"view": "hourly"}})
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "Belum ada data", r.Embeds[0].Description)

	h.donate(t, "1", "A", 30000)
	for _, view := range []string{"dashboard", "hourly", "daily", "monthly"} {
		r = h.bot.Handle(ctx, Invocation{Command: "analytics", Options: map[string]interface{}{"view": view}})
		require.Len(t, r.Embeds, 1, view)
		assert.NotEqual(t, errorReplyText, r.Content, view)
	}
	assert.Contains(t, r.Embeds[0].Description, "Rp 30.000 (1x)")
}

func TestDigestSender(t *testing.T) {
	h := newHarness(t)
	m := &fakeMessenger{}
	d := NewDigest(h.store, time.UTC)
	sender := NewDigestSender(m, "sum1", d)
	ctx := context.Background()

	require.NoError(t, sender.SendDigest(ctx, jobs.CadenceDaily))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "sum1", m.sent[0].channelID)
	assert.Equal(t, colorGray, m.sent[0].msg.Embeds[0].Color)

	h.donate(t, "1", "A", 25000)
	h.donate(t, "2", "B", 5000)
	require.NoError(t, sender.SendDigest(ctx, jobs.CadenceWeekly))
	e := m.sent[1].msg.Embeds[0]
	assert.Equal(t, "📊 Rangkuman Donasi Mingguan", e.Title)
	assert.Equal(t, "🥇 **A** - Rp 25.000\n🥈 **B** - Rp 5.000", e.Fields[3].Value)

	// the daily digest covers yesterday
	d.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	require.NoError(t, sender.SendDigest(ctx, jobs.CadenceDaily))
	e = m.sent[2].msg.Embeds[0]
	assert.Equal(t, "📊 Rangkuman Donasi Harian", e.Title)
	assert.Equal(t, "1. **A** - Rp 25.000\n2. **B** - Rp 5.000", e.Fields[3].Value)
}

func TestDonasiInfo(t *testing.T) {
	h := newHarness(t)
	r := h.bot.Handle(context.Background(), Invocation{Command: "donasi"})
	require.Len(t, r.Embeds, 1)
	assert.Equal(t, "https://saweria.co/kreator", r.Embeds[0].Fields[0].Value)
}
