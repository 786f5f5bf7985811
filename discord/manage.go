package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/analytics"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/filter"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

// ==================== BLACKLIST ====================

var wordSeparator = regexp.MustCompile(`[,\s]+`)

const listChunk = 50

func splitWords(s string) []string {
	var out []string
	for _, w := range wordSeparator.Split(s, -1) {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func (b *Bot) blacklist(ctx context.Context, inv Invocation) (Reply, error) {
	switch inv.Subcommand {
	case "add":
		var added, existing []string
		for _, w := range splitWords(inv.String("kata", "")) {
			term, ok, err := b.deps.Filter.AddTerm(ctx, w, inv.UserTag)
			if errors.Is(err, filter.ErrTermTooShort) || errors.Is(err, filter.ErrTermInvalid) {
				continue
			}
			if err != nil {
				return Reply{}, err
			}
			if ok {
				added = append(added, term)
			} else {
				existing = append(existing, term)
			}
		}
		if len(added) == 0 && len(existing) == 0 {
			return private("❌ Kata harus minimal 2 karakter."), nil
		}
		text := fmt.Sprintf("✅ Berhasil menambahkan %d kata ke blacklist:\n`%s`", len(added), strings.Join(added, ", "))
		if len(added) == 0 {
			text = "ℹ️ Semua kata sudah ada di blacklist."
		}
		if len(existing) > 0 && len(added) > 0 {
			text += fmt.Sprintf("\nSudah ada: `%s`", strings.Join(existing, ", "))
		}
		return private(text), nil

	case "remove":
		var removed []string
		for _, w := range splitWords(inv.String("kata", "")) {
			ok, err := b.deps.Filter.RemoveTerm(ctx, w)
			if err != nil {
				return Reply{}, err
			}
			if ok {
				removed = append(removed, strings.ToLower(w))
			}
		}
		if len(removed) == 0 {
			return private("ℹ️ Kata tidak ditemukan di blacklist."), nil
		}
		return private("✅ Berhasil menghapus kata dari blacklist:\n`%s`", strings.Join(removed, ", ")), nil

	case "list":
		terms := b.deps.Filter.Terms()
		if len(terms) == 0 {
			return private("📝 Tidak ada kata dalam blacklist."), nil
		}
		e := &discordgo.MessageEmbed{
			Color:       colorRed,
			Title:       "🚫 Daftar Kata Terlarang",
			Description: fmt.Sprintf("Total: **%d** kata", len(terms)),
			Footer:      footer("Gunakan /blacklist add atau /blacklist remove untuk mengelola"),
			Timestamp:   stamp(b.now()),
		}
		for i := 0; i < len(terms) && len(e.Fields) < 5; i += listChunk {
			end := i + listChunk
			if end > len(terms) {
				end = len(terms)
			}
			e.Fields = append(e.Fields, field(
				fmt.Sprintf("Kata %d-%d", i+1, end),
				"`"+strings.Join(terms[i:end], "`, `")+"`",
				false,
			))
		}
		return Reply{Embeds: []*discordgo.MessageEmbed{e}, Ephemeral: true}, nil

	case "test":
		text := inv.String("teks", "")
		hit := b.deps.Filter.Contains(text)
		e := &discordgo.MessageEmbed{
			Color: colorGreen,
			Title: "✅ Tidak Ada Kata Terlarang",
			Fields: []*discordgo.MessageEmbedField{
				field("📝 Teks Asli", "```"+text+"```", false),
				field("🔒 Hasil Filter", "```"+b.deps.Filter.Censor(text)+"```", false),
			},
			Timestamp: stamp(b.now()),
		}
		if hit {
			e.Color, e.Title = colorRed, "🚫 Kata Terlarang Terdeteksi"
		}
		return Reply{Embeds: []*discordgo.MessageEmbed{e}, Ephemeral: true}, nil
	}
	return private("❌ Subcommand tidak dikenal."), nil
}

// ==================== MINIMUM ALERT ====================

func (b *Bot) minAlert(ctx context.Context, inv Invocation) (Reply, error) {
	current := donation.LoadMinAlert(ctx, b.deps.Store, b.deps.MinAlert)
	amount := inv.Int("jumlah", 0)
	if amount < 0 {
		amount = 0
	}

	switch inv.Subcommand {
	case "set":
		current.Chat = amount
		if err := donation.SaveMinAlert(ctx, b.deps.Store, current); err != nil {
			return Reply{}, err
		}
		if amount == 0 {
			return private("✅ Semua donasi akan ditampilkan di Discord."), nil
		}
		return private("✅ Minimum notifikasi Discord: **%s**", utils.FormatRupiah(amount)), nil

	case "tts":
		current.TTS = amount
		if err := donation.SaveMinAlert(ctx, b.deps.Store, current); err != nil {
			return Reply{}, err
		}
		if amount == 0 {
			return private("✅ Semua donasi akan dibacakan TTS."), nil
		}
		return private("✅ Minimum TTS: **%s**", utils.FormatRupiah(amount)), nil

	case "status":
		show := func(v int64, zero string) string {
			if v == 0 {
				return zero
			}
			return utils.FormatRupiah(v)
		}
		return Reply{Ephemeral: true, Embeds: []*discordgo.MessageEmbed{{
			Color: colorBlurple,
			Title: "⚙️ Minimum Alert Settings",
			Fields: []*discordgo.MessageEmbedField{
				field("💬 Notifikasi Discord", show(current.Chat, "Semua donasi"), true),
				field("🔊 Text-to-Speech", show(current.TTS, "Semua donasi"), true),
			},
			Footer:    footer("Donasi di bawah minimum tetap tercatat di database"),
			Timestamp: stamp(b.now()),
		}}}, nil
	}
	return private("❌ Subcommand tidak dikenal."), nil
}

// ==================== ANALYTICS ====================

func (b *Bot) analyticsView(ctx context.Context, inv Invocation) (Reply, error) {
	svc := b.deps.Analytics
	switch inv.String("view", "dashboard") {
	case "hourly":
		blocks, err := svc.HourBlocks(ctx)
		if err != nil {
			return Reply{}, err
		}
		return embedReply(b.chartEmbed(colorMint, "⏰ Donasi per Jam (7 hari terakhir)", "Jam", blocks)), nil

	case "daily":
		days, err := svc.Weekdays(ctx)
		if err != nil {
			return Reply{}, err
		}
		return embedReply(b.chartEmbed(colorOrange, "📅 Donasi per Hari (30 hari terakhir)", "Hari", days[:])), nil

	case "monthly":
		months, err := svc.Monthly(ctx, 6)
		if err != nil {
			return Reply{}, err
		}
		// newest first
		for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
			months[i], months[j] = months[j], months[i]
		}
		return embedReply(b.chartEmbed(colorGold, "📈 Tren Bulanan (6 bulan terakhir)", "Bulan", months)), nil
	}

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		return Reply{}, err
	}
	return embedReply(b.dashboardEmbed(dash)), nil
}

func (b *Bot) chartEmbed(color int, title, unit string, buckets []analytics.Bucket) *discordgo.MessageEmbed {
	var max int64
	width := 0
	for _, bk := range buckets {
		if bk.Total > max {
			max = bk.Total
		}
		if n := len([]rune(bk.Label)); n > width {
			width = n
		}
	}

	var sb strings.Builder
	for _, bk := range buckets {
		label := bk.Label + strings.Repeat(" ", width-len([]rune(bk.Label)))
		fmt.Fprintf(&sb, "`%s` %s %s (%dx)\n", label, analytics.Bar(bk.Total, max, 12), utils.FormatRupiah(bk.Total), bk.Count)
	}
	desc := sb.String()
	if max == 0 {
		desc = "Belum ada data"
	}
	return &discordgo.MessageEmbed{
		Color:       color,
		Title:       title,
		Description: desc,
		Footer:      footer(fmt.Sprintf("Format: [%s] [Bar] [Total] (Jumlah transaksi)", unit)),
		Timestamp:   stamp(b.now()),
	}
}

func (b *Bot) dashboardEmbed(d analytics.Dashboard) *discordgo.MessageEmbed {
	trend, change := "📈", fmt.Sprintf("+%.1f%%", d.MonthChange)
	if d.MonthChange < 0 {
		trend, change = "📉", fmt.Sprintf("%.1f%%", d.MonthChange)
	}

	return &discordgo.MessageEmbed{
		Color:       colorBlurple,
		Title:       "📊 Analytics Dashboard",
		Description: "Statistik lengkap donasi",
		Fields: []*discordgo.MessageEmbedField{
			field("💰 Total", fmt.Sprintf("**%s**\n%d transaksi dari %d donatur",
				utils.FormatRupiah(d.Totals.TotalAmount), d.Totals.TotalTransactions, d.Totals.TotalDonors), true),
			field("📈 Rata-rata", fmt.Sprintf("**Average:** %s\n**Max:** %s\n**Min:** %s",
				utils.FormatRupiah(int64(d.Amounts.Average+0.5)), utils.FormatRupiah(d.Amounts.Max), utils.FormatRupiah(d.Amounts.Min)), true),
			field(trend+" Bulan Ini vs Lalu", fmt.Sprintf("**Bulan ini:** %s\n**Bulan lalu:** %s\n**Perubahan:** %s",
				utils.FormatRupiah(d.ThisMonth), utils.FormatRupiah(d.LastMonth), change), true),
			field("⏰ Peak Hour (7 hari)", fmt.Sprintf("**Jam %d:00** - %d transaksi\nTotal: %s",
				d.PeakHour, d.PeakHourBucket.Count, utils.FormatRupiah(d.PeakHourBucket.Total)), true),
			field("📅 Peak Day (30 hari)", fmt.Sprintf("**%s** - %d transaksi\nTotal: %s",
				d.PeakDay.Label, d.PeakDay.Count, utils.FormatRupiah(d.PeakDay.Total)), true),
		},
		Footer:    footer("Data diupdate real-time"),
		Timestamp: stamp(b.now()),
	}
}

// ==================== THANK YOU ====================

func (b *Bot) thankYou(ctx context.Context, inv Invocation) (Reply, error) {
	svc := b.deps.ThankYou

	switch inv.Subcommand {
	case "settings":
		return Reply{Ephemeral: true, Embeds: []*discordgo.MessageEmbed{b.thankYouSettingsEmbed(svc.Settings(ctx))}}, nil

	case "set":
		tier, err := thankyou.ParseTier(inv.String("tier", ""))
		if err != nil {
			return private("❌ Tier tidak dikenal."), nil
		}
		err = svc.SetTemplate(ctx, tier, inv.String("template", ""))
		if errors.Is(err, thankyou.ErrEmptyTemplate) {
			return private("❌ Template tidak boleh kosong."), nil
		}
		if err != nil {
			return Reply{}, err
		}
		return private("✅ Template **%s** diperbarui.\nPreview: %s", tier, svc.Preview(ctx, tier)), nil

	case "tier":
		tier, err := thankyou.ParseTier(inv.String("tier", ""))
		if err != nil {
			return private("❌ Tier tidak dikenal."), nil
		}
		amount := inv.Int("jumlah", 0)
		switch err = svc.SetThreshold(ctx, tier, amount); {
		case errors.Is(err, thankyou.ErrThresholdTooLow):
			return private("❌ Threshold minimal %s.", utils.FormatRupiah(thankyou.MinThreshold)), nil
		case errors.Is(err, thankyou.ErrThresholdOrdering):
			return private("❌ Threshold medium harus lebih kecil dari large."), nil
		case errors.Is(err, thankyou.ErrUnknownTier):
			return private("❌ Hanya tier medium dan large yang punya threshold."), nil
		case err != nil:
			return Reply{}, err
		}
		return private("✅ Threshold **%s** diatur ke %s", tier, utils.FormatRupiah(amount)), nil

	case "reset":
		if err := svc.Reset(ctx); err != nil {
			return Reply{}, err
		}
		return private("✅ Semua template terima kasih dikembalikan ke default."), nil

	case "preview":
		tier, err := thankyou.ParseTier(inv.String("tier", ""))
		if err != nil {
			return private("❌ Tier tidak dikenal."), nil
		}
		return Reply{Ephemeral: true, Embeds: []*discordgo.MessageEmbed{{
			Color:       tier.Color(),
			Title:       "💌 Preview: " + string(tier),
			Description: svc.Preview(ctx, tier),
			Timestamp:   stamp(b.now()),
		}}}, nil
	}
	return private("❌ Subcommand tidak dikenal."), nil
}

func (b *Bot) thankYouSettingsEmbed(s thankyou.Settings) *discordgo.MessageEmbed {
	block := func(t thankyou.Tier) string { return "```" + s.Template(t) + "```" }
	return &discordgo.MessageEmbed{
		Color:       colorBlurple,
		Title:       "💌 Thank You Settings",
		Description: "Template pesan terima kasih untuk setiap tier donasi",
		Fields: []*discordgo.MessageEmbedField{
			field(fmt.Sprintf("🟢 Small (< %s)", utils.FormatRupiah(s.Tiers.Medium)), block(thankyou.TierSmall), false),
			field(fmt.Sprintf("🟡 Medium (%s - %s)", utils.FormatRupiah(s.Tiers.Medium), utils.FormatRupiah(s.Tiers.Large-1)), block(thankyou.TierMedium), false),
			field(fmt.Sprintf("🟠 Large (>= %s)", utils.FormatRupiah(s.Tiers.Large)), block(thankyou.TierLarge), false),
			field("🎆 Milestone", block(thankyou.TierMilestone), false),
			field("📝 Variables", "`{name}` - Nama donatur\n`{amount}` - Jumlah donasi\n`{message}` - Pesan donatur\n`{tier}` - Tier donasi\n`{date}` - Tanggal\n`{time}` - Waktu", false),
		},
		Footer:    footer("Gunakan /thankyou set <tier> <template> untuk mengubah"),
		Timestamp: stamp(b.now()),
	}
}
