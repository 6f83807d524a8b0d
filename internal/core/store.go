package core

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Store when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLanguageSetNotFound is returned for an unknown language set.
	ErrLanguageSetNotFound = errors.New("language set not found")

	// ErrContentTooLarge is returned when a paste or file exceeds the import limit.
	ErrContentTooLarge = errors.New("content too large")
)

// Store is the persistence the service needs. The postgres package provides
// the production implementation.
type Store interface {
	GetLanguageSet(ctx context.Context, id int64) (*LanguageSet, error)
	ListLanguageSets(ctx context.Context) ([]LanguageSet, error)

	ListPhrases(ctx context.Context, filter PhraseFilter) ([]Phrase, int, error)
	ListCategories(ctx context.Context, setID int64) ([]string, error)

	// InsertPhrases writes rows in a single transaction. Rows that already
	// exist are left untouched; the returned slice holds the input lines
	// that were actually inserted.
	InsertPhrases(ctx context.Context, setID int64, rows []NewPhrase) ([]int, error)

	RecordImport(ctx context.Context, rec ImportRecord) error
	ListImports(ctx context.Context, setID int64, limit int) ([]ImportRecord, error)
}
