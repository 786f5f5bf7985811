package filter

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.ConnectDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDB(db) })
	return store.New(db)
}

func loaded(t *testing.T, s *store.Store) *Filter {
	t.Helper()
	f := New(s)
	require.NoError(t, f.Load(context.Background()))
	return f
}

func TestLoadSeedsDefaults(t *testing.T) {
	f := loaded(t, newTestStore(t))
	assert.Len(t, f.Terms(), len(DefaultTerms))
	assert.True(t, f.Contains("dasar ANJING"))
}

func TestAddTermAndCensor(t *testing.T) {
	ctx := context.Background()
	f := loaded(t, newTestStore(t))

	term, added, err := f.AddTerm(ctx, "  Spam ", "admin")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "spam", term)

	_, added, err = f.AddTerm(ctx, "SPAM", "admin")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, "this is **** content", f.Censor("this is spam content"))
	assert.True(t, f.Contains("SPAM!"))
	assert.Equal(t, "****!", f.Censor("SpAm!"))
}

func TestAddTermRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	f := loaded(t, newTestStore(t))

	_, _, err := f.AddTerm(ctx, " a ", "admin")
	assert.ErrorIs(t, err, ErrTermTooShort)

	_, _, err = f.AddTerm(ctx, "a*b", "admin")
	assert.ErrorIs(t, err, ErrTermInvalid)
}

func TestCensorMasksSubstrings(t *testing.T) {
	f := loaded(t, newTestStore(t))
	// "tai" inside a longer word is masked too.
	assert.Equal(t, "de***l", f.Censor("detail"))
	assert.Equal(t, "Kamu ****** banget", f.Censor("Kamu ANJING banget"))
}

func TestCensorKeepsMultibyteLength(t *testing.T) {
	ctx := context.Background()
	f := loaded(t, newTestStore(t))
	_, _, err := f.AddTerm(ctx, "ÄÖ", "admin")
	require.NoError(t, err)

	assert.Equal(t, "x**y 🎉", f.Censor("xäöy 🎉"))
}

func TestCensorIsIdempotent(t *testing.T) {
	f := loaded(t, newTestStore(t))
	inputs := []string{
		"",
		"halo semua",
		"bangsat bajingan keparat",
		"asuasuasu",
		"TAIIII cuk",
		"pesan biasa tanpa kata kasar",
	}
	for _, in := range inputs {
		once := f.Censor(in)
		assert.Equal(t, once, f.Censor(once), in)
	}
}

func TestCensorEmptyInput(t *testing.T) {
	f := loaded(t, newTestStore(t))
	assert.Equal(t, "", f.Censor(""))
	assert.False(t, f.Contains(""))
}

func TestTermsSurviveReload(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := loaded(t, s)

	_, _, err := f.AddTerm(ctx, "spam", "admin")
	require.NoError(t, err)
	_, _, err = f.AddTerm(ctx, "iklan", "admin")
	require.NoError(t, err)

	removed, err := f.RemoveTerm(ctx, "IKLAN")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.RemoveTerm(ctx, "iklan")
	require.NoError(t, err)
	assert.False(t, removed)

	reloaded := loaded(t, s)
	assert.True(t, reloaded.Contains("no spam please"))
	assert.False(t, reloaded.Contains("iklan"))
}

func TestDefaultTermsReturnOnReload(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := loaded(t, s)

	removed, err := f.RemoveTerm(ctx, "babi")
	require.NoError(t, err)
	require.True(t, removed)
	assert.False(t, f.Contains("babi"))

	reloaded := loaded(t, s)
	assert.True(t, reloaded.Contains("babi"))
	assert.Len(t, reloaded.Terms(), len(DefaultTerms))
}

func TestMatchesListsEveryTerm(t *testing.T) {
	f := loaded(t, newTestStore(t))
	assert.Equal(t, []string{"bangsat", "asu"}, f.Matches("asu bangsat"))
	assert.Empty(t, f.Matches("halo"))
}
