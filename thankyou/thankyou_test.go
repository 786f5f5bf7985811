package thankyou

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend map[string][]byte

func (m memBackend) GetSetting(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memBackend) PutSetting(_ context.Context, key string, value []byte) error {
	m[key] = value
	return nil
}

func (m memBackend) DeleteSetting(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func TestTierFor(t *testing.T) {
	st := Defaults()
	assert.Equal(t, TierSmall, st.TierFor(0))
	assert.Equal(t, TierSmall, st.TierFor(49999))
	assert.Equal(t, TierMedium, st.TierFor(50000))
	assert.Equal(t, TierLarge, st.TierFor(100000))
}

func TestRenderIsCaseInsensitive(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 3, 0, time.UTC)
	got := Render("{NAME} kasih {Amount} ({tier}) {message} {date} {time}", Data{Name: "Budi", Amount: 15000, Message: "hai"}, TierSmall, now)
	assert.Equal(t, "Budi kasih Rp 15.000 (small) hai 9/3/2024 07.05.03", got)
}

func TestMessageUsesMilestoneTemplate(t *testing.T) {
	svc := NewService(memBackend{}, time.UTC)
	ctx := context.Background()

	tier, msg := svc.Message(ctx, Data{Name: "Ani", Amount: 10000}, false)
	assert.Equal(t, TierSmall, tier)
	assert.Equal(t, "🎉 Terima kasih Ani! Donasimu sebesar Rp 10.000 sangat berarti!", msg)

	tier, msg = svc.Message(ctx, Data{Name: "Ani", Amount: 10000}, true)
	assert.Equal(t, TierMilestone, tier)
	assert.Contains(t, msg, "MILESTONE! Ani")
}

func TestSetTemplateAndThreshold(t *testing.T) {
	svc := NewService(memBackend{}, time.UTC)
	ctx := context.Background()

	require.NoError(t, svc.SetTemplate(ctx, TierLarge, "Makasih {name}"))
	require.NoError(t, svc.SetThreshold(ctx, TierLarge, 200000))

	tier, msg := svc.Message(ctx, Data{Name: "Eko", Amount: 150000}, false)
	assert.Equal(t, TierMedium, tier)
	assert.Contains(t, msg, "WOW! Eko")

	tier, msg = svc.Message(ctx, Data{Name: "Eko", Amount: 200000}, false)
	assert.Equal(t, TierLarge, tier)
	assert.Equal(t, "Makasih Eko", msg)

	assert.ErrorIs(t, svc.SetThreshold(ctx, TierSmall, 5000), ErrUnknownTier)
	assert.ErrorIs(t, svc.SetThreshold(ctx, TierMedium, 500), ErrThresholdTooLow)
	assert.ErrorIs(t, svc.SetThreshold(ctx, TierMedium, 300000), ErrThresholdOrdering)
	assert.ErrorIs(t, svc.SetTemplate(ctx, Tier("huge"), "x"), ErrUnknownTier)
	assert.ErrorIs(t, svc.SetTemplate(ctx, TierSmall, "  "), ErrEmptyTemplate)
}

func TestResetRestoresDefaults(t *testing.T) {
	svc := NewService(memBackend{}, time.UTC)
	ctx := context.Background()
	require.NoError(t, svc.SetTemplate(ctx, TierSmall, "x"))
	require.NoError(t, svc.Reset(ctx))
	assert.Equal(t, Defaults(), svc.Settings(ctx))
}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {
	svc := NewService(memBackend{"thankyou_settings": []byte("{not json")}, time.UTC)
	assert.Equal(t, Defaults(), svc.Settings(context.Background()))
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, TierMedium, tier)
	_, err = ParseTier("gold")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestPreview(t *testing.T) {
	svc := NewService(memBackend{}, time.UTC)
	assert.Contains(t, svc.Preview(context.Background(), TierMedium), "Donatur Contoh baru saja donasi Rp 50.000")
}
