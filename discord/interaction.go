package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 45 * time.Second

// OnReady registers the commands and sets the bot activity.
func (b *Bot) OnReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("✅ Bot Discord login", "user", r.User.String())

	if err := RegisterCommands(s, r.User.ID, b.deps.GuildID); err != nil {
		slog.Error("❌ Error mendaftarkan commands", "err", err)
	}
	if err := s.UpdateWatchStatus(0, "donasi | /donasihelp"); err != nil {
		slog.Warn("set activity failed", "err", err)
	}
}

// OnInteraction answers slash commands. Every command gets a response, slow
// ones through a deferred acknowledgement.
func (b *Bot) OnInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	inv := invocationFrom(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var reply Reply
	if b.isSlow(inv.Command) {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		})
		if err != nil {
			slog.Error("❌ defer interaction failed", "command", inv.Command, "err", err)
			return
		}
		reply = b.Handle(ctx, inv)
		edit := &discordgo.WebhookEdit{Content: &reply.Content}
		if len(reply.Embeds) > 0 {
			edit.Embeds = &reply.Embeds
		}
		if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
			slog.Error("❌ edit interaction response failed", "command", inv.Command, "err", err)
		}
	} else {
		reply = b.Handle(ctx, inv)
		data := &discordgo.InteractionResponseData{Content: reply.Content, Embeds: reply.Embeds}
		if reply.Ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			slog.Error("❌ interaction response failed", "command", inv.Command, "err", err)
		}
	}

	if reply.After != nil {
		go reply.After(context.Background())
	}
}

func invocationFrom(s *discordgo.Session, i *discordgo.InteractionCreate) Invocation {
	data := i.ApplicationCommandData()
	inv := Invocation{
		Command: data.Name,
		Options: map[string]interface{}{},
		GuildID: i.GuildID,
	}

	opts := data.Options
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		inv.Subcommand = opts[0].Name
		opts = opts[0].Options
	}
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionInteger:
			inv.Options[o.Name] = o.IntValue()
		case discordgo.ApplicationCommandOptionString:
			inv.Options[o.Name] = o.StringValue()
		default:
			inv.Options[o.Name] = fmt.Sprint(o.Value)
		}
	}

	user := i.User
	if i.Member != nil {
		user = i.Member.User
		inv.IsAdmin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	}
	if user != nil {
		inv.UserID = user.ID
		inv.UserTag = user.String()
	}

	if s.State != nil && i.GuildID != "" && inv.UserID != "" {
		if vs, err := s.State.VoiceState(i.GuildID, inv.UserID); err == nil {
			inv.VoiceChannelID = vs.ChannelID
		}
	}
	return inv
}
