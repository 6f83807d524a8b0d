// Package coretest provides an in-memory core.Store for tests.
package coretest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
)

// MemoryStore is a goroutine-safe core.Store kept in memory.
type MemoryStore struct {
	mu      sync.Mutex
	sets    map[int64]core.LanguageSet
	phrases []core.Phrase
	imports []core.ImportRecord
	nextID  int64

	// FailInsert, when set, is consulted before every InsertPhrases call.
	// A non-nil error aborts that call without writing anything.
	FailInsert func(rows []core.NewPhrase) error

	// InsertCalls counts InsertPhrases calls.
	InsertCalls int
}

var _ core.Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding the given language sets.
func NewMemoryStore(sets ...core.LanguageSet) *MemoryStore {
	m := &MemoryStore{sets: make(map[int64]core.LanguageSet, len(sets))}
	for _, s := range sets {
		m.sets[s.ID] = s
	}
	return m
}

// Phrases returns a copy of all stored phrases.
func (m *MemoryStore) Phrases() []core.Phrase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.phrases)
}

// Imports returns a copy of all recorded imports, oldest first.
func (m *MemoryStore) Imports() []core.ImportRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.imports)
}

func (m *MemoryStore) GetLanguageSet(_ context.Context, id int64) (*core.LanguageSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sets[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) ListLanguageSets(_ context.Context) ([]core.LanguageSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.LanguageSet, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b core.LanguageSet) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *MemoryStore) ListPhrases(_ context.Context, f core.PhraseFilter) ([]core.Phrase, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(f.Search)
	var matched []core.Phrase
	for _, p := range m.phrases {
		if p.LanguageSetID != f.LanguageSetID {
			continue
		}
		if f.Category != "" && !slices.Contains(strings.Fields(p.Categories), f.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Phrase), search) &&
			!strings.Contains(strings.ToLower(p.Translation), search) {
			continue
		}
		matched = append(matched, p)
	}

	start := (f.Page - 1) * f.PageSize
	if start >= len(matched) {
		return nil, len(matched), nil
	}
	end := min(start+f.PageSize, len(matched))
	return slices.Clone(matched[start:end]), len(matched), nil
}

func (m *MemoryStore) ListCategories(_ context.Context, setID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cats []string
	for _, p := range m.phrases {
		if p.LanguageSetID != setID {
			continue
		}
		for _, c := range strings.Fields(p.Categories) {
			if !slices.Contains(cats, c) {
				cats = append(cats, c)
			}
		}
	}
	slices.Sort(cats)
	return cats, nil
}

func (m *MemoryStore) InsertPhrases(_ context.Context, setID int64, rows []core.NewPhrase) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls++
	if m.FailInsert != nil {
		if err := m.FailInsert(rows); err != nil {
			return nil, err
		}
	}

	var inserted []int
	for _, r := range rows {
		if m.exists(setID, r.Phrase, r.Translation) {
			continue
		}
		m.nextID++
		m.phrases = append(m.phrases, core.Phrase{
			ID:            m.nextID,
			LanguageSetID: setID,
			Categories:    r.Categories,
			Phrase:        r.Phrase,
			Translation:   r.Translation,
			CreatedAt:     time.Now().UTC(),
		})
		inserted = append(inserted, r.Line)
	}
	return inserted, nil
}

func (m *MemoryStore) exists(setID int64, phrase, translation string) bool {
	for _, p := range m.phrases {
		if p.LanguageSetID == setID && p.Phrase == phrase && p.Translation == translation {
			return true
		}
	}
	return false
}

func (m *MemoryStore) RecordImport(_ context.Context, rec core.ImportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imports = append(m.imports, rec)
	return nil
}

func (m *MemoryStore) ListImports(_ context.Context, setID int64, limit int) ([]core.ImportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []core.ImportRecord
	for i := len(m.imports) - 1; i >= 0 && len(out) < limit; i-- {
		if m.imports[i].LanguageSetID == setID {
			out = append(out, m.imports[i])
		}
	}
	return out, nil
}
