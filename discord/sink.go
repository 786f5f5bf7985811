package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the part of *discordgo.Session used to post messages.
type Messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sink posts donation and goal notifications to the donation channel.
type Sink struct {
	msg       Messenger
	channelID string
	now       func() time.Time
}

func NewSink(msg Messenger, channelID string) *Sink {
	return &Sink{msg: msg, channelID: channelID, now: time.Now}
}

func (s *Sink) Name() string { return "discord" }

func (s *Sink) NotifyDonation(ctx context.Context, n donation.Notification) error {
	if _, err := s.msg.ChannelMessageSendComplex(s.channelID, DonationMessage(n, s.now()), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send donation embed: %w", err)
	}
	return nil
}

func (s *Sink) NotifyGoalReached(ctx context.Context, p goals.Progress) error {
	if _, err := s.msg.ChannelMessageSendComplex(s.channelID, GoalReachedMessage(p, s.now()), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send goal embed: %w", err)
	}
	return nil
}

// DonationMessage builds the notification for one donation. Milestone
// donations ping @everyone unless they are tests.
func DonationMessage(n donation.Notification, at time.Time) *discordgo.MessageSend {
	d := n.Donation

	e := &discordgo.MessageEmbed{
		Color:       colorOrange,
		Title:       "🎉 Donasi Baru!",
		Description: n.ThankYou,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: saweriaIcon},
		Timestamp:   stamp(at),
		Fields: []*discordgo.MessageEmbedField{
			field("💵 Jumlah", utils.FormatRupiah(d.Amount), true),
			field("📅 Waktu", fmt.Sprintf("<t:%d:R>", at.Unix()), true),
		},
	}
	if n.HasMilestone {
		e.Color = colorGold
		e.Title = n.Milestone.Label()
	}
	if e.Description == "" {
		e.Description = fmt.Sprintf("**%s** telah berdonasi!", d.DonorName)
	}

	if d.Message != "" {
		name := "💬 Pesan"
		if n.Filtered {
			name = "💬 Pesan (difilter)"
		}
		e.Fields = append(e.Fields, field(name, d.Message, false))
	}
	if n.Media != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: n.Media}
		e.Fields = append(e.Fields, field("🎬 Media", fmt.Sprintf("[Lihat Media](%s)", n.Media), false))
	}

	e.Footer = footer("Terima kasih atas dukungannya! 💖")
	if n.IsTest {
		e.Footer = footer("⚠️ INI ADALAH TEST DONASI")
	}

	msg := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{e}}
	if n.HasMilestone && !n.IsTest {
		msg.Content = "@everyone"
		msg.AllowedMentions = &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		}
	}
	return msg
}

func GoalReachedMessage(p goals.Progress, at time.Time) *discordgo.MessageSend {
	desc := p.Description
	if desc == "" {
		desc = goals.DefaultDescription
	}
	return &discordgo.MessageSend{
		Content: "@everyone",
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		},
		Embeds: []*discordgo.MessageEmbed{{
			Color:       colorGreen,
			Title:       "🎊 GOAL TERCAPAI!",
			Description: fmt.Sprintf("Target donasi **%s** telah tercapai!", desc),
			Fields: []*discordgo.MessageEmbedField{
				field("🎯 Target", utils.FormatRupiah(p.Target), true),
				field("💰 Terkumpul", utils.FormatRupiah(p.CurrentTotal), true),
			},
			Footer:    footer("Terima kasih kepada semua donatur! 🎉"),
			Timestamp: stamp(at),
		}},
	}
}
