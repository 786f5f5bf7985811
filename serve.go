package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/analytics"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/controllers"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/discord"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/filter"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/jobs"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/routes"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/saweria"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/telegram"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/voice"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/websocket"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan bot, socket Saweria dan HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	f := filter.New(st)
	if err := f.Load(ctx); err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}
	tracker := goals.NewTracker(st)
	thanks := thankyou.NewService(st, loc)
	stats := analytics.NewService(st, loc)

	// Redis (opsional)
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates

	// Voice
	presence := voice.NewPresence(session, cfg.GuildID)
	queue := voice.NewQueue(presence)
	go queue.Run(ctx)
	alerter := voice.NewAlerter(voice.AlerterConfig{
		SoundFile: cfg.SoundFile,
		Sound:     cfg.EnableSoundAlert,
		TTS:       cfg.EnableTTS,
		Lang:      cfg.TTSLanguage,
	}, queue, presence)

	// Overlay
	overlay := websocket.NewManager()
	go overlay.Run(ctx)

	minAlert := donation.MinAlert{Chat: cfg.MinAlertAmount, TTS: cfg.MinTTSAmount}
	opts := donation.Options{
		Store:    st,
		Filter:   f,
		Goals:    tracker,
		ThankYou: thanks,
		Notifiers: []donation.Notifier{
			discord.NewSink(session, cfg.DiscordChannelID),
			websocket.NewOverlay(overlay),
		},
		Alerter:  alerter,
		MinAlert: minAlert,
	}
	if cfg.TopDonatorRoleID != "" {
		opts.Roles = discord.NewRoleUpdater(session, cfg.GuildID, cfg.TopDonatorRoleID)
	}

	// Cloudinary
	mirror, err := utils.NewMediaMirror(cfg.CloudinaryURL)
	if err != nil {
		slog.Warn("⚠️ Cloudinary tidak aktif", "err", err)
	} else if mirror != nil {
		opts.Mirror = mirror
	}

	// Telegram
	tg, err := telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		slog.Warn("⚠️ Telegram tidak aktif", "err", err)
	} else if tg != nil {
		opts.Notifiers = append(opts.Notifiers, tg)
	}
	pipeline := donation.New(opts)

	// Auto summary
	digest := discord.NewDigest(st, loc)
	processor := jobs.NewDigestProcessor(discord.NewDigestSender(session, cfg.SummaryChannelID, digest), jobs.NewSendLock(rdb), loc)
	var backend jobs.Backend
	if rdb != nil {
		opt := config.AsynqRedisOpt(cfg)
		worker := jobs.NewServer(opt)
		if err := worker.Start(jobs.NewServeMux(processor)); err != nil {
			return fmt.Errorf("start asynq worker: %w", err)
		}
		defer worker.Shutdown()

		ab := jobs.NewAsynqBackend(opt, loc)
		if err := ab.Start(); err != nil {
			return fmt.Errorf("start asynq scheduler: %w", err)
		}
		defer ab.Stop()
		backend = ab
		slog.Info("🟢 Digest memakai asynq")
	} else {
		cb := jobs.NewCronBackend(loc, processor)
		cb.Start()
		defer cb.Stop()
		backend = cb
		slog.Info("🟢 Digest memakai cron lokal")
	}
	scheduler := jobs.NewScheduler(backend, st)
	if mode, err := scheduler.Restore(ctx); err != nil {
		slog.Error("❌ gagal memulihkan auto summary", "err", err)
	} else {
		slog.Info("📋 Auto summary", "mode", mode)
	}
	defer scheduler.Stop()

	// Discord
	bot := discord.NewBot(discord.Deps{
		Store:            st,
		Filter:           f,
		Goals:            tracker,
		ThankYou:         thanks,
		Analytics:        stats,
		Digest:           digest,
		Scheduler:        scheduler,
		Pipeline:         pipeline,
		Voice:            presence,
		Channels:         session,
		MinAlert:         minAlert,
		SaweriaUsername:  cfg.SaweriaUsername,
		SummaryChannelID: cfg.SummaryChannelID,
		VoiceChannelID:   cfg.VoiceChannelID,
		GuildID:          cfg.GuildID,
		Location:         loc,
	})
	session.AddHandler(bot.OnReady)
	session.AddHandler(bot.OnInteraction)
	if cfg.VoiceChannelID != "" && cfg.EnableSoundAlert {
		session.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
			go autoJoin(ctx, s, presence, cfg.VoiceChannelID)
		})
	}
	if err := session.Open(); err != nil {
		return fmt.Errorf("discord login: %w", err)
	}
	defer func() {
		presence.Leave()
		if err := session.Close(); err != nil {
			slog.Warn("close discord session", "err", err)
		}
	}()

	// Saweria socket
	client := saweria.NewClient(cfg.SaweriaSocketURL, cfg.SaweriaStreamKey, pipeline)
	socketDone := make(chan struct{})
	go func() {
		defer close(socketDone)
		client.Run(ctx)
	}()

	// HTTP
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.SetupRoutes(r, routes.Handlers{
		Webhook: controllers.NewWebhookController(pipeline, cfg.SaweriaStreamKey),
		Stats:   controllers.NewStatsController(st, tracker, f),
		Health:  controllers.NewHealthController(client.Connected, presence.InVoice),
		Overlay: overlay,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		slog.Info("🚀 Server running", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ HTTP server berhenti", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("📴 Mematikan bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "err", err)
	}
	<-socketDone
	return nil
}

func autoJoin(ctx context.Context, s *discordgo.Session, presence *voice.Presence, channelID string) {
	ch, err := s.Channel(channelID)
	if err != nil {
		slog.Error("❌ Gagal auto-join voice channel", "channel", channelID, "err", err)
		return
	}
	if err := presence.Join(ctx, ch.GuildID, ch.ID); err != nil {
		slog.Error("❌ Gagal auto-join voice channel", "channel", channelID, "err", err)
		return
	}
	slog.Info("🔊 Auto-join voice channel", "channel", ch.Name)
}
