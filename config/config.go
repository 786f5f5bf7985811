// config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingDiscordToken = errors.New("DISCORD_TOKEN is required")
	ErrMissingChannelID    = errors.New("DISCORD_CHANNEL_ID is required")
	ErrMissingStreamKey    = errors.New("SAWERIA_STREAM_KEY is required")
)

// Config holds everything supplied at process start. It is a plain value:
// runtime-mutable state (goal, blacklist, digest mode) lives in the settings table.
type Config struct {
	DiscordToken     string
	DiscordChannelID string
	GuildID          string
	SummaryChannelID string
	TopDonatorRoleID string

	SaweriaStreamKey string
	SaweriaUsername  string
	SaweriaSocketURL string

	VoiceChannelID   string
	EnableSoundAlert bool
	SoundFile        string
	EnableTTS        bool
	TTSLanguage      string

	MinAlertAmount int64
	MinTTSAmount   int64

	DatabasePath string
	Timezone     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr    string
	CORSOrigins []string

	CloudinaryURL  string
	TelegramToken  string
	TelegramChatID int64

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present), the environment and an optional config.yaml.
// Environment always wins over the yaml file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("SAWERIA_USERNAME", "username_kamu")
	v.SetDefault("SAWERIA_SOCKET_URL", "wss://events.saweria.co/socket.io/?EIO=4&transport=websocket")
	v.SetDefault("SOUND_FILE", "alert.mp3")
	v.SetDefault("TTS_LANGUAGE", "id")
	v.SetDefault("MIN_ALERT_AMOUNT", 0)
	v.SetDefault("MIN_TTS_AMOUNT", 0)
	v.SetDefault("DATABASE_PATH", "donations.db")
	v.SetDefault("TIMEZONE", "Asia/Jakarta")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config.yaml: %w", err)
		}
	}

	cfg := Config{
		DiscordToken:     v.GetString("DISCORD_TOKEN"),
		DiscordChannelID: v.GetString("DISCORD_CHANNEL_ID"),
		GuildID:          v.GetString("GUILD_ID"),
		SummaryChannelID: v.GetString("SUMMARY_CHANNEL_ID"),
		TopDonatorRoleID: v.GetString("TOP_DONATOR_ROLE_ID"),

		SaweriaStreamKey: v.GetString("SAWERIA_STREAM_KEY"),
		SaweriaUsername:  v.GetString("SAWERIA_USERNAME"),
		SaweriaSocketURL: v.GetString("SAWERIA_SOCKET_URL"),

		VoiceChannelID:   v.GetString("VOICE_CHANNEL_ID"),
		EnableSoundAlert: v.GetBool("ENABLE_SOUND_ALERT"),
		SoundFile:        v.GetString("SOUND_FILE"),
		EnableTTS:        v.GetBool("ENABLE_TTS"),
		TTSLanguage:      v.GetString("TTS_LANGUAGE"),

		MinAlertAmount: v.GetInt64("MIN_ALERT_AMOUNT"),
		MinTTSAmount:   v.GetInt64("MIN_TTS_AMOUNT"),

		DatabasePath: v.GetString("DATABASE_PATH"),
		Timezone:     v.GetString("TIMEZONE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		HTTPAddr:    v.GetString("HTTP_ADDR"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		CloudinaryURL:  v.GetString("CLOUDINARY_URL"),
		TelegramToken:  v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: v.GetInt64("TELEGRAM_CHAT_ID"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}
	if cfg.SummaryChannelID == "" {
		cfg.SummaryChannelID = cfg.DiscordChannelID
	}
	if cfg.MinAlertAmount < 0 {
		cfg.MinAlertAmount = 0
	}
	if cfg.MinTTSAmount < 0 {
		cfg.MinTTSAmount = 0
	}
	return cfg, nil
}

// Validate reports the first missing credential. The caller treats any error as fatal.
func (c Config) Validate() error {
	switch {
	case c.DiscordToken == "":
		return ErrMissingDiscordToken
	case c.DiscordChannelID == "":
		return ErrMissingChannelID
	case c.SaweriaStreamKey == "":
		return ErrMissingStreamKey
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
