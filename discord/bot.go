// Package discord is the chat side of the bot: the donation sink, the
// top-donor role, digests and the slash-command surface.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/analytics"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/filter"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/jobs"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"

	"github.com/bwmarrin/discordgo"
)

const errorReplyText = "❌ Terjadi kesalahan saat memproses perintah."

// Invocation is a parsed slash command, independent of the gateway payload.
type Invocation struct {
	Command    string
	Subcommand string
	Options    map[string]interface{}

	UserID  string
	UserTag string
	IsAdmin bool
	GuildID string

	// VoiceChannelID is the voice channel the invoking user sits in, if any.
	VoiceChannelID string
}

func (inv Invocation) String(name, def string) string {
	if v, ok := inv.Options[name].(string); ok && v != "" {
		return v
	}
	return def
}

func (inv Invocation) Int(name string, def int64) int64 {
	switch v := inv.Options[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return def
}

func (inv Invocation) Has(name string) bool {
	_, ok := inv.Options[name]
	return ok
}

type Reply struct {
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Ephemeral bool

	// After runs once the reply has been delivered.
	After func(ctx context.Context)
}

func private(format string, args ...interface{}) Reply {
	return Reply{Content: fmt.Sprintf(format, args...), Ephemeral: true}
}

func embedReply(e ...*discordgo.MessageEmbed) Reply {
	return Reply{Embeds: e}
}

type ModeConfigurer interface {
	Configure(ctx context.Context, mode jobs.Mode) error
	Mode() jobs.Mode
}

type VoiceControl interface {
	Join(ctx context.Context, guildID, channelID string) error
	Leave() bool
	InVoice() bool
}

type ChannelResolver interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

type DonationHandler interface {
	Handle(ctx context.Context, payload donation.Payload, isTest bool) donation.Result
}

type Deps struct {
	Store     *store.Store
	Filter    *filter.Filter
	Goals     *goals.Tracker
	ThankYou  *thankyou.Service
	Analytics *analytics.Service
	Digest    *Digest
	Scheduler ModeConfigurer
	Pipeline  DonationHandler

	// optional
	Voice    VoiceControl
	Channels ChannelResolver

	MinAlert         donation.MinAlert
	SaweriaUsername  string
	SummaryChannelID string
	VoiceChannelID   string
	GuildID          string
	Location         *time.Location
}

type command struct {
	admin bool
	// slow commands are acknowledged first and answered by editing the response
	slow bool
	run  func(ctx context.Context, inv Invocation) (Reply, error)
}

type Bot struct {
	deps     Deps
	commands map[string]command
	now      func() time.Time
}

func NewBot(deps Deps) *Bot {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	b := &Bot{deps: deps, now: time.Now}
	b.commands = map[string]command{
		"leaderboard":  {run: b.leaderboard},
		"donasi":       {run: b.donasi},
		"donasihelp":   {run: b.donasiHelp},
		"recentdonasi": {run: b.recentDonasi},
		"totaldonasi":  {run: b.totalDonasi},
		"goal":         {run: b.goal},
		"summary":      {run: b.summary},
		"analytics":    {run: b.analyticsView},

		"setgoal":     {admin: true, run: b.setGoal},
		"resetgoal":   {admin: true, run: b.resetGoal},
		"autosummary": {admin: true, run: b.autoSummary},
		"joinvc":      {admin: true, slow: true, run: b.joinVC},
		"leavevc":     {admin: true, run: b.leaveVC},
		"testdonasi":  {admin: true, run: b.testDonasi},
		"blacklist":   {admin: true, run: b.blacklist},
		"minalert":    {admin: true, run: b.minAlert},
		"thankyou":    {admin: true, run: b.thankYou},
	}
	return b
}

// Handle runs one command. It always produces a reply.
func (b *Bot) Handle(ctx context.Context, inv Invocation) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("❌ panic handling command", "command", inv.Command, "panic", r, "stack", string(debug.Stack()))
			reply = private(errorReplyText)
		}
	}()

	cmd, ok := b.commands[inv.Command]
	if !ok {
		return private("❌ Perintah tidak dikenal.")
	}
	if cmd.admin && !inv.IsAdmin {
		return private("❌ Perintah ini hanya untuk admin.")
	}

	reply, err := cmd.run(ctx, inv)
	if err != nil {
		slog.Error("❌ Error handling command", "command", inv.Command, "subcommand", inv.Subcommand, "user", inv.UserTag, "err", err)
		return private(errorReplyText)
	}
	return reply
}

func (b *Bot) isSlow(name string) bool {
	return b.commands[name].slow
}
