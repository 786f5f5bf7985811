// Package telegram mirrors donation notifications to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the sink uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Sink struct {
	bot    Sender
	chatID int64
}

// New logs in with token. It returns nil, nil when the sink is not configured.
func New(token string, chatID int64) (*Sink, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	slog.Info("✅ Telegram bot connected", "user", bot.Self.UserName, "chat_id", chatID)
	return NewSink(bot, chatID), nil
}

func NewSink(bot Sender, chatID int64) *Sink {
	return &Sink{bot: bot, chatID: chatID}
}

func (s *Sink) Name() string { return "telegram" }

func (s *Sink) NotifyDonation(_ context.Context, n donation.Notification) error {
	text := DonationText(n)

	var c tgbotapi.Chattable
	if n.Media != "" && isImage(n.Media) {
		photo := tgbotapi.NewPhoto(s.chatID, tgbotapi.FileURL(n.Media))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		c = photo
	} else {
		msg := tgbotapi.NewMessage(s.chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = n.Media == ""
		c = msg
	}
	if _, err := s.bot.Send(c); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (s *Sink) NotifyGoalReached(_ context.Context, p goals.Progress) error {
	msg := tgbotapi.NewMessage(s.chatID, GoalText(p))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// DonationText renders n as Telegram HTML.
func DonationText(n donation.Notification) string {
	d := n.Donation
	title := "🎉 Donasi Baru!"
	if n.HasMilestone {
		title = n.Milestone.Label()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(title))
	if n.ThankYou != "" {
		fmt.Fprintf(&sb, "%s\n", html.EscapeString(n.ThankYou))
	} else {
		fmt.Fprintf(&sb, "<b>%s</b> telah berdonasi!\n", html.EscapeString(d.DonorName))
	}
	fmt.Fprintf(&sb, "\n💵 <b>Jumlah:</b> %s", utils.FormatRupiah(d.Amount))
	if d.Message != "" {
		label := "💬 Pesan"
		if n.Filtered {
			label = "💬 Pesan (difilter)"
		}
		fmt.Fprintf(&sb, "\n%s: <i>%s</i>", label, html.EscapeString(d.Message))
	}
	if n.Media != "" && !isImage(n.Media) {
		fmt.Fprintf(&sb, "\n🎬 <a href=\"%s\">Lihat Media</a>", html.EscapeString(n.Media))
	}
	if n.IsTest {
		sb.WriteString("\n\n⚠️ <i>INI ADALAH TEST DONASI</i>")
	}
	return sb.String()
}

func GoalText(p goals.Progress) string {
	desc := p.Description
	if desc == "" {
		desc = goals.DefaultDescription
	}
	return fmt.Sprintf("<b>🎊 GOAL TERCAPAI!</b>\nTarget donasi <b>%s</b> telah tercapai!\n\n🎯 Target: %s\n💰 Terkumpul: %s",
		html.EscapeString(desc), utils.FormatRupiah(p.Target), utils.FormatRupiah(p.CurrentTotal))
}

func isImage(url string) bool {
	u := strings.ToLower(url)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	return false
}
