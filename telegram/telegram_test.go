package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/milestone"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestDonationTextEscapesHTML(t *testing.T) {
	text := DonationText(donation.Notification{
		Donation: models.Donation{DonorName: "<Budi>", Amount: 25000, Message: "a & b"},
		Filtered: true,
	})
	assert.Contains(t, text, "<b>&lt;Budi&gt;</b> telah berdonasi!")
	assert.Contains(t, text, "Rp 25.000")
	assert.Contains(t, text, "💬 Pesan (difilter): <i>a &amp; b</i>")
}

func TestNotifyDonationSendsHTMLMessage(t *testing.T) {
	bot := &fakeBot{}
	s := NewSink(bot, 42)

	err := s.NotifyDonation(context.Background(), donation.Notification{
		Donation:     models.Donation{DonorName: "Ani", Amount: 500000},
		Milestone:    milestone.DefaultTiers[0],
		HasMilestone: true,
		IsTest:       true,
	})
	require.NoError(t, err)
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "💎 DONASI DIAMOND!")
	assert.Contains(t, msg.Text, "TEST DONASI")
}

func TestNotifyDonationWithImageSendsPhoto(t *testing.T) {
	bot := &fakeBot{}
	s := NewSink(bot, 42)

	require.NoError(t, s.NotifyDonation(context.Background(), donation.Notification{
		Donation: models.Donation{DonorName: "Ani", Amount: 1000},
		Media:    "https://res.cloudinary.com/demo/image/upload/x.PNG?v=1",
	}))
	photo, ok := bot.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Contains(t, photo.Caption, "Ani")
}

func TestNotifyGoalReached(t *testing.T) {
	bot := &fakeBot{}
	s := NewSink(bot, 7)
	require.NoError(t, s.NotifyGoalReached(context.Background(), goals.Progress{
		Goal:         goals.Goal{Target: 100000},
		CurrentTotal: 110000,
	}))
	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Donation Goal")
	assert.Contains(t, msg.Text, "Rp 110.000")

	bot.err = errors.New("flood")
	assert.Error(t, s.NotifyGoalReached(context.Background(), goals.Progress{}))
}

func TestNewWithoutConfigIsDisabled(t *testing.T) {
	s, err := New("", 0)
	require.NoError(t, err)
	assert.Nil(t, s)
}
