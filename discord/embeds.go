package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	colorGold    = 0xFFD700
	colorOrange  = 0xFF6B35
	colorGreen   = 0x00FF00
	colorMint    = 0x00D26A
	colorBlurple = 0x5865F2
	colorRed     = 0xFF0000
	colorGray    = 0x808080

	saweriaIcon = "https://saweria.co/favicon.ico"
)

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	if value == "" {
		value = "-"
	}
	// embed field values are capped at 1024 characters
	return &discordgo.MessageEmbedField{Name: name, Value: utils.Truncate(value, 1024), Inline: inline}
}

func footer(text string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: text}
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func medal(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	}
	return fmt.Sprintf("%d.", i+1)
}

// ranking renders one line per entry; medals replaces the first three numbers.
func ranking(entries []models.LeaderboardEntry, medals bool) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		prefix := fmt.Sprintf("%d.", i+1)
		if medals {
			prefix = medal(i)
		}
		fmt.Fprintf(&sb, "%s **%s** - %s", prefix, e.DonorName, utils.FormatRupiah(e.Total))
	}
	return sb.String()
}

func statsFields(st models.Stats) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		field("💰 Total Terkumpul", utils.FormatRupiah(st.TotalAmount), true),
		field("👥 Jumlah Donatur", fmt.Sprint(st.TotalDonors), true),
		field("📊 Total Transaksi", fmt.Sprint(st.TotalTransactions), true),
	}
}
