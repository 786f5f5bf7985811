package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/jobs"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

// ==================== INFO ====================

func (b *Bot) leaderboard(ctx context.Context, inv Invocation) (Reply, error) {
	limit := clamp(inv.Int("jumlah", 10), 1, 25)
	top, err := b.deps.Store.Leaderboard(ctx, int(limit))
	if err != nil {
		return Reply{}, err
	}
	if len(top) == 0 {
		return private("📊 Belum ada donasi yang tercatat."), nil
	}
	return embedReply(&discordgo.MessageEmbed{
		Color:       colorGold,
		Title:       "🏆 Top Donatur",
		Description: ranking(top, true),
		Footer:      footer(fmt.Sprintf("Menampilkan %d donatur teratas", len(top))),
		Timestamp:   stamp(b.now()),
	}), nil
}

func (b *Bot) donasi(_ context.Context, _ Invocation) (Reply, error) {
	return embedReply(&discordgo.MessageEmbed{
		Color:       colorOrange,
		Title:       "💝 Cara Donasi",
		Description: "Dukung kreator favorit kamu melalui Saweria!",
		Fields: []*discordgo.MessageEmbedField{
			field("🔗 Link Donasi", "https://saweria.co/"+b.deps.SaweriaUsername, false),
			field("📋 Cara Donasi", "1. Kunjungi link di atas\n"+
				"2. Masukkan nama dan jumlah donasi\n"+
				"3. Tulis pesan (opsional)\n"+
				"4. Pilih metode pembayaran\n"+
				"5. Selesaikan pembayaran", false),
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: saweriaIcon},
		Footer:    footer("Terima kasih atas dukungannya! 💖"),
	}), nil
}

func (b *Bot) donasiHelp(_ context.Context, _ Invocation) (Reply, error) {
	return embedReply(&discordgo.MessageEmbed{
		Color:       colorBlurple,
		Title:       "📖 Bantuan Perintah Bot",
		Description: "Daftar semua perintah yang tersedia:",
		Fields: []*discordgo.MessageEmbedField{
			field("📊 Informasi", "`/leaderboard` - Top donatur\n"+
				"`/recentdonasi` - Donasi terbaru\n"+
				"`/totaldonasi` - Statistik donasi\n"+
				"`/summary` - Rangkuman donasi\n"+
				"`/analytics` - Analytics donasi\n"+
				"`/goal` - Progress donation goal\n"+
				"`/donasi` - Cara berdonasi", false),
			field("🔧 Admin Only", "`/testdonasi` - Test notifikasi\n"+
				"`/setgoal` - Set target donasi\n"+
				"`/resetgoal` - Reset goal\n"+
				"`/autosummary` - Atur summary otomatis\n"+
				"`/joinvc` - Bot gabung voice channel\n"+
				"`/leavevc` - Bot keluar voice channel\n"+
				"`/blacklist` - Kelola kata terlarang\n"+
				"`/minalert` - Minimum notifikasi & TTS\n"+
				"`/thankyou` - Template terima kasih", false),
		},
		Footer:    footer("Saweria Discord Bot"),
		Timestamp: stamp(b.now()),
	}), nil
}

func (b *Bot) recentDonasi(ctx context.Context, inv Invocation) (Reply, error) {
	limit := clamp(inv.Int("jumlah", 5), 1, 10)
	recent, err := b.deps.Store.RecentDonations(ctx, int(limit))
	if err != nil {
		return Reply{}, err
	}
	if len(recent) == 0 {
		return private("📋 Belum ada donasi yang tercatat."), nil
	}

	lines := make([]string, 0, len(recent))
	for i, d := range recent {
		msg := d.Message
		if msg == "" {
			msg = "Tidak ada pesan"
		} else if b.deps.Filter != nil {
			msg = b.deps.Filter.Censor(msg)
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** - %s\n   └ %s", i+1, d.DonorName, utils.FormatRupiah(d.Amount), utils.Truncate(msg, 200)))
	}
	return embedReply(&discordgo.MessageEmbed{
		Color:       colorMint,
		Title:       "📋 Donasi Terbaru",
		Description: strings.Join(lines, "\n\n"),
		Footer:      footer(fmt.Sprintf("Menampilkan %d donasi terbaru", len(recent))),
		Timestamp:   stamp(b.now()),
	}), nil
}

func (b *Bot) totalDonasi(ctx context.Context, _ Invocation) (Reply, error) {
	st, err := b.deps.Store.TotalStats(ctx)
	if err != nil {
		return Reply{}, err
	}
	return embedReply(&discordgo.MessageEmbed{
		Color:     colorMint,
		Title:     "💰 Statistik Donasi",
		Fields:    statsFields(st),
		Footer:    footer("Terima kasih kepada semua donatur! 💖"),
		Timestamp: stamp(b.now()),
	}), nil
}

// ==================== GOAL ====================

func (b *Bot) goal(ctx context.Context, _ Invocation) (Reply, error) {
	p, ok, err := b.deps.Goals.Progress(ctx)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return private("❌ Belum ada donation goal yang ditetapkan."), nil
	}
	e := &discordgo.MessageEmbed{
		Color:       colorOrange,
		Title:       "🎯 Donation Goal",
		Description: p.Description,
		Fields: []*discordgo.MessageEmbedField{
			field("🎯 Target", utils.FormatRupiah(p.Target), true),
			field("💰 Terkumpul", utils.FormatRupiah(p.CurrentTotal), true),
			field("📉 Sisa", utils.FormatRupiah(p.Remaining), true),
			field("📊 Progress", "`"+p.Bar()+"`", false),
		},
		Footer:    footer(fmt.Sprintf("Dari %d donatur", p.TotalDonors)),
		Timestamp: stamp(b.now()),
	}
	if p.IsComplete {
		e.Color, e.Title = colorGreen, "🎊 Goal Tercapai!"
	}
	return embedReply(e), nil
}

func (b *Bot) setGoal(ctx context.Context, inv Invocation) (Reply, error) {
	g, err := b.deps.Goals.SetGoal(ctx, inv.Int("target", 0), inv.String("deskripsi", goals.DefaultDescription))
	if errors.Is(err, goals.ErrInvalidTarget) {
		return private("❌ Target harus lebih dari 0."), nil
	}
	if err != nil {
		return Reply{}, err
	}
	p, _, err := b.deps.Goals.Progress(ctx)
	if err != nil {
		return Reply{}, err
	}
	return embedReply(&discordgo.MessageEmbed{
		Color:       colorBlurple,
		Title:       "🎯 Donation Goal Ditetapkan!",
		Description: g.Description,
		Fields: []*discordgo.MessageEmbedField{
			field("🎯 Target", utils.FormatRupiah(g.Target), true),
			field("💰 Terkumpul", utils.FormatRupiah(p.CurrentTotal), true),
			field("📊 Progress", "`"+p.Bar()+"`", false),
		},
		Timestamp: stamp(b.now()),
	}), nil
}

func (b *Bot) resetGoal(ctx context.Context, _ Invocation) (Reply, error) {
	if err := b.deps.Goals.ResetGoal(ctx); err != nil {
		return Reply{}, err
	}
	return private("✅ Donation goal telah direset."), nil
}

// ==================== SUMMARY ====================

func (b *Bot) summary(ctx context.Context, inv Invocation) (Reply, error) {
	sum, err := b.deps.Digest.Summarize(ctx, Period(inv.String("periode", string(PeriodDaily))), 0)
	if err != nil {
		return Reply{}, err
	}
	if sum.Empty() {
		return private("📋 Tidak ada donasi untuk periode ini."), nil
	}
	return embedReply(b.deps.Digest.SummaryEmbed(sum)), nil
}

func (b *Bot) autoSummary(ctx context.Context, inv Invocation) (Reply, error) {
	mode, err := jobs.ParseMode(inv.String("mode", ""))
	if errors.Is(err, jobs.ErrInvalidMode) {
		return private("❌ Mode harus off, daily, weekly, atau both."), nil
	}
	if err != nil {
		return Reply{}, err
	}
	if err := b.deps.Scheduler.Configure(ctx, mode); err != nil {
		return Reply{}, err
	}
	if mode == jobs.ModeOff {
		return private("✅ Auto summary telah dinonaktifkan."), nil
	}

	zone := b.now().In(b.deps.Location).Format("MST")
	var text string
	switch mode {
	case jobs.ModeDaily:
		text = fmt.Sprintf("Harian (setiap hari jam 00:00 %s)", zone)
	case jobs.ModeWeekly:
		text = fmt.Sprintf("Mingguan (setiap Senin jam 00:00 %s)", zone)
	default:
		text = "Harian & Mingguan"
	}
	return private("✅ Auto summary aktif: **%s**\nSummary akan dikirim ke channel <#%s>", text, b.deps.SummaryChannelID), nil
}

// ==================== VOICE ====================

func (b *Bot) joinVC(ctx context.Context, inv Invocation) (Reply, error) {
	if b.deps.Voice == nil || b.deps.Channels == nil {
		return private("❌ Fitur voice tidak aktif."), nil
	}

	// pilihan channel: opsi command, voice channel user, lalu VOICE_CHANNEL_ID
	channelID := inv.String("channel", "")
	if channelID == "" {
		channelID = inv.VoiceChannelID
	}
	if channelID == "" {
		channelID = b.deps.VoiceChannelID
	}

	notVoice := private("❌ Silakan pilih voice channel atau bergabung ke voice channel terlebih dahulu.")
	if channelID == "" {
		return notVoice, nil
	}
	ch, err := b.deps.Channels.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		slog.Warn("voice channel lookup failed", "channel_id", channelID, "err", err)
		return notVoice, nil
	}
	if ch.Type != discordgo.ChannelTypeGuildVoice {
		return notVoice, nil
	}

	if err := b.deps.Voice.Join(ctx, ch.GuildID, ch.ID); err != nil {
		slog.Error("❌ Gagal join voice channel", "channel_id", ch.ID, "err", err)
		return private("❌ Gagal bergabung ke voice channel."), nil
	}
	return private("✅ Bot bergabung ke voice channel **%s**. Sound alert akan aktif!", ch.Name), nil
}

func (b *Bot) leaveVC(_ context.Context, _ Invocation) (Reply, error) {
	if b.deps.Voice != nil && b.deps.Voice.Leave() {
		return private("✅ Bot telah keluar dari voice channel."), nil
	}
	return private("❌ Bot tidak sedang di voice channel."), nil
}

// ==================== TEST ====================

func (b *Bot) testDonasi(_ context.Context, inv Invocation) (Reply, error) {
	payload := donation.TestPayload(
		inv.String("nama", "Test Donatur"),
		inv.Int("jumlah", 10000),
		inv.String("pesan", "Ini adalah test donasi!"),
	)
	reply := private("✅ Mengirim test donasi...")
	reply.After = func(ctx context.Context) {
		b.deps.Pipeline.Handle(ctx, payload, true)
	}
	return reply, nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
