package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var adminOnly int64 = discordgo.PermissionAdministrator

func minValue(v float64) *float64 { return &v }

func intOption(name, desc string, required bool, min *float64, max float64) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: desc,
		Required:    required,
		MinValue:    min,
		MaxValue:    max,
	}
}

func stringOption(name, desc string, required bool, choices ...*discordgo.ApplicationCommandOptionChoice) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: desc,
		Required:    required,
		Choices:     choices,
	}
}

func subcommand(name, desc string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: desc,
		Options:     opts,
	}
}

func choice(name, value string) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{Name: name, Value: value}
}

var tierChoices = []*discordgo.ApplicationCommandOptionChoice{
	choice("🟢 Small", "small"),
	choice("🟡 Medium", "medium"),
	choice("🟠 Large", "large"),
	choice("🎆 Milestone", "milestone"),
}

// Commands is the slash-command set registered on ready.
var Commands = []*discordgo.ApplicationCommand{
	// ==================== INFO ====================
	{
		Name:        "leaderboard",
		Description: "Tampilkan top donatur",
		Options:     []*discordgo.ApplicationCommandOption{intOption("jumlah", "Jumlah top donatur yang ditampilkan", false, minValue(1), 25)},
	},
	{Name: "donasi", Description: "Informasi cara donasi"},
	{Name: "donasihelp", Description: "Bantuan perintah bot"},
	{
		Name:        "recentdonasi",
		Description: "Tampilkan donasi terbaru",
		Options:     []*discordgo.ApplicationCommandOption{intOption("jumlah", "Jumlah donasi yang ditampilkan", false, minValue(1), 10)},
	},
	{Name: "totaldonasi", Description: "Tampilkan total donasi yang terkumpul"},

	// ==================== GOAL ====================
	{Name: "goal", Description: "Tampilkan progress donation goal"},
	{
		Name:                     "setgoal",
		Description:              "Set target donasi (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			intOption("target", "Target amount dalam Rupiah", true, minValue(10000), 0),
			stringOption("deskripsi", "Deskripsi goal", false),
		},
	},
	{Name: "resetgoal", Description: "Reset donation goal (Admin only)", DefaultMemberPermissions: &adminOnly},

	// ==================== SUMMARY ====================
	{
		Name:        "summary",
		Description: "Tampilkan rangkuman donasi",
		Options: []*discordgo.ApplicationCommandOption{stringOption("periode", "Periode rangkuman", false,
			choice("Hari ini", "daily"), choice("Minggu ini", "weekly"), choice("Semua waktu", "all"))},
	},
	{
		Name:                     "autosummary",
		Description:              "Atur summary otomatis harian/mingguan (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{stringOption("mode", "Mode summary otomatis", true,
			choice("Aktifkan Harian (jam 00:00)", "daily"),
			choice("Aktifkan Mingguan (Senin 00:00)", "weekly"),
			choice("Aktifkan Keduanya", "both"),
			choice("Nonaktifkan", "off"))},
	},

	// ==================== VOICE ====================
	{
		Name:                     "joinvc",
		Description:              "Bot bergabung ke voice channel (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "Voice channel untuk sound alert",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
		}},
	},
	{Name: "leavevc", Description: "Bot keluar dari voice channel (Admin only)", DefaultMemberPermissions: &adminOnly},

	// ==================== TEST ====================
	{
		Name:                     "testdonasi",
		Description:              "Test notifikasi donasi (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("nama", "Nama donatur", false),
			intOption("jumlah", "Jumlah donasi", false, minValue(1000), 0),
			stringOption("pesan", "Pesan donatur", false),
		},
	},

	// ==================== BLACKLIST ====================
	{
		Name:                     "blacklist",
		Description:              "Kelola kata terlarang (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("add", "Tambah kata ke blacklist", stringOption("kata", "Kata yang ingin diblokir", true)),
			subcommand("remove", "Hapus kata dari blacklist", stringOption("kata", "Kata yang ingin dihapus", true)),
			subcommand("list", "Tampilkan daftar kata terlarang"),
			subcommand("test", "Test filter pada teks", stringOption("teks", "Teks untuk ditest", true)),
		},
	},

	// ==================== MINIMUM ALERT ====================
	{
		Name:                     "minalert",
		Description:              "Atur minimum amount untuk notifikasi (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("set", "Set minimum amount untuk notifikasi Discord",
				intOption("jumlah", "Minimum jumlah donasi (Rupiah). 0 = tampilkan semua", true, minValue(0), 0)),
			subcommand("tts", "Set minimum amount untuk TTS",
				intOption("jumlah", "Minimum jumlah donasi untuk TTS (Rupiah). 0 = bacakan semua", true, minValue(0), 0)),
			subcommand("status", "Lihat setting minimum amount saat ini"),
		},
	},

	// ==================== ANALYTICS ====================
	{
		Name:        "analytics",
		Description: "Lihat analytics dan statistik donasi",
		Options: []*discordgo.ApplicationCommandOption{stringOption("view", "Jenis analytics", false,
			choice("📊 Dashboard (Overview)", "dashboard"),
			choice("⏰ Per Jam", "hourly"),
			choice("📅 Per Hari", "daily"),
			choice("📈 Tren Bulanan", "monthly"))},
	},

	// ==================== THANK YOU ====================
	{
		Name:                     "thankyou",
		Description:              "Kelola pesan terima kasih (Admin only)",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("settings", "Lihat settings template terima kasih"),
			subcommand("set", "Set template pesan untuk tier tertentu",
				stringOption("tier", "Tier donasi", true, tierChoices...),
				stringOption("template", "Template pesan. Gunakan {name}, {amount}, {message}, {date}, {time}", true)),
			subcommand("tier", "Set threshold untuk tier",
				stringOption("tier", "Tier yang ingin diubah", true, tierChoices[1], tierChoices[2]),
				intOption("jumlah", "Threshold amount (Rupiah)", true, minValue(1000), 0)),
			subcommand("reset", "Reset semua template ke default"),
			subcommand("preview", "Preview pesan terima kasih",
				stringOption("tier", "Tier yang ingin di-preview", true, tierChoices...)),
		},
	},
}

// CommandRegistrar is the part of *discordgo.Session used to register commands.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the application's commands. An empty guildID
// registers them globally.
func RegisterCommands(r CommandRegistrar, appID, guildID string) error {
	slog.Info("🔄 Mendaftarkan slash commands...", "guild_id", guildID)
	registered, err := r.ApplicationCommandBulkOverwrite(appID, guildID, Commands)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	slog.Info("✅ Slash commands berhasil didaftarkan!", "count", len(registered))
	return nil
}
