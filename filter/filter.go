// Package filter keeps the forbidden-term set and censors donor messages.
package filter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
)

const (
	maskRune   = '*'
	minTermLen = 2
	seededBy   = "system"
)

var (
	ErrTermTooShort = errors.New("term must be at least 2 characters")
	ErrTermInvalid  = errors.New("term must not contain the mask character")
)

// DefaultTerms is merged into the stored set on every Load. Removing one only
// lasts until the next start.
var DefaultTerms = []string{
	"anjing", "bangsat", "babi", "kontol", "memek", "ngentot", "tolol",
	"goblok", "idiot", "bajingan", "keparat", "brengsek", "tai", "asu",
	"jancok", "cuk", "jembut",
}

// Repository persists terms. *store.Store implements it.
type Repository interface {
	AddBlacklistWord(ctx context.Context, word, addedBy string) error
	RemoveBlacklistWord(ctx context.Context, word string) error
	BlacklistWords(ctx context.Context) ([]models.BlacklistWord, error)
}

type Filter struct {
	repo Repository

	mu    sync.RWMutex
	terms map[string]struct{}
	// longest first so that the mask of a long term is applied before its substrings
	ordered []string
}

func New(repo Repository) *Filter {
	return &Filter{repo: repo, terms: map[string]struct{}{}}
}

// Load merges DefaultTerms into the store, then mirrors the stored set in memory.
func (f *Filter) Load(ctx context.Context) error {
	for _, t := range DefaultTerms {
		if err := f.repo.AddBlacklistWord(ctx, t, seededBy); err != nil {
			return fmt.Errorf("seed blacklist: %w", err)
		}
	}

	rows, err := f.repo.BlacklistWords(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.terms = make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if term, err := Normalize(r.Word); err == nil {
			f.terms[term] = struct{}{}
		}
	}
	f.reorder()

	slog.Info("🚫 Blacklist loaded", "terms", len(f.terms))
	return nil
}

// Normalize lower-cases and trims word and validates it as a term.
func Normalize(word string) (string, error) {
	term := string(lowerRunes(strings.TrimSpace(word)))
	if utf8.RuneCountInString(term) < minTermLen {
		return "", ErrTermTooShort
	}
	if strings.ContainsRune(term, maskRune) {
		return "", ErrTermInvalid
	}
	return term, nil
}

// AddTerm stores word. added is false when the term was already present.
func (f *Filter) AddTerm(ctx context.Context, word, addedBy string) (term string, added bool, err error) {
	term, err = Normalize(word)
	if err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.terms[term]; ok {
		return term, false, nil
	}
	if err := f.repo.AddBlacklistWord(ctx, term, addedBy); err != nil {
		return "", false, err
	}
	f.terms[term] = struct{}{}
	f.reorder()
	return term, true, nil
}

// RemoveTerm deletes word. removed is false when it was not present.
func (f *Filter) RemoveTerm(ctx context.Context, word string) (removed bool, err error) {
	term := string(lowerRunes(strings.TrimSpace(word)))

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.terms[term]; !ok {
		return false, nil
	}
	if err := f.repo.RemoveBlacklistWord(ctx, term); err != nil {
		return false, err
	}
	delete(f.terms, term)
	f.reorder()
	return true, nil
}

// Terms returns the current set sorted alphabetically.
func (f *Filter) Terms() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.terms))
	for t := range f.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether any term occurs in text, ignoring case.
func (f *Filter) Contains(text string) bool {
	return len(f.Matches(text)) > 0
}

// Matches returns every term found in text, longest first.
func (f *Filter) Matches(text string) []string {
	if text == "" {
		return nil
	}
	lower := string(lowerRunes(text))

	f.mu.RLock()
	defer f.mu.RUnlock()
	var found []string
	for _, t := range f.ordered {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

// Censor masks every occurrence of every term with one '*' per rune.
// Terms are matched as substrings, so a banned word inside a longer word
// is masked as well.
func (f *Filter) Censor(text string) string {
	if text == "" {
		return text
	}

	f.mu.RLock()
	terms := make([][]rune, len(f.ordered))
	for i, t := range f.ordered {
		terms[i] = []rune(t)
	}
	f.mu.RUnlock()

	out := []rune(text)
	lower := lowerRunes(text)
	for changed := true; changed; {
		changed = false
		for _, term := range terms {
			if maskAll(out, lower, term) {
				changed = true
			}
		}
	}
	return string(out)
}

// maskAll masks non-overlapping occurrences of term in lower, mirroring them in out.
func maskAll(out, lower, term []rune) bool {
	hit := false
	for i := 0; i+len(term) <= len(lower); {
		if !equalAt(lower, term, i) {
			i++
			continue
		}
		for j := i; j < i+len(term); j++ {
			out[j] = maskRune
			lower[j] = maskRune
		}
		i += len(term)
		hit = true
	}
	return hit
}

func equalAt(s, term []rune, i int) bool {
	for j, r := range term {
		if s[i+j] != r {
			return false
		}
	}
	return true
}

// lowerRunes folds case rune by rune so indexes line up with the original text.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func (f *Filter) reorder() {
	f.ordered = f.ordered[:0]
	for t := range f.terms {
		f.ordered = append(f.ordered, t)
	}
	sort.Slice(f.ordered, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(f.ordered[i]), utf8.RuneCountInString(f.ordered[j])
		if li != lj {
			return li > lj
		}
		return f.ordered[i] < f.ordered[j]
	})
}
