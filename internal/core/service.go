package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/config"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

const (
	defaultPageSize   = 50
	maxPageSize       = 500
	defaultImportList = 20
	maxImportList     = 200
)

// Service implements phrase preview, import and the read paths around them.
type Service struct {
	store   Store
	limiter *ImportLimiter
	cfg     config.ImportConfig
	now     func() time.Time
}

// NewService wires a service over store.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		limiter: NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		cfg:     cfg.Import,
		now:     time.Now,
	}
}

// Limiter exposes the import limiter for status reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Preview runs the bounded preview of content against a language set.
//
// Parser failures are not returned as errors: they are part of the preview
// and also mapped into PreviewResponse.Error for display.
func (s *Service) Preview(ctx context.Context, setID int64, content, separator string) (*PreviewResponse, error) {
	set, err := s.languageSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > s.cfg.MaxContentSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrContentTooLarge, s.cfg.MaxContentSize)
	}

	mode, err := phrase.ParseMode(separator)
	if err != nil {
		return nil, err
	}

	resp := &PreviewResponse{
		LanguageSet: set,
		Preview:     phrase.PreviewText(content, mode),
	}
	if resp.Preview.Err != nil {
		msg := MapError(resp.Preview.Err)
		resp.Error = &msg
	}
	return resp, nil
}

// ListLanguageSets returns every language set.
func (s *Service) ListLanguageSets(ctx context.Context) ([]LanguageSet, error) {
	sets, err := s.store.ListLanguageSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list language sets: %w", err)
	}
	return sets, nil
}

// ListPhrases returns one page of phrases. Page and page size are clamped.
func (s *Service) ListPhrases(ctx context.Context, filter PhraseFilter) (*PhrasePage, error) {
	if _, err := s.languageSet(ctx, filter.LanguageSetID); err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	switch {
	case filter.PageSize <= 0:
		filter.PageSize = defaultPageSize
	case filter.PageSize > maxPageSize:
		filter.PageSize = maxPageSize
	}
	filter.Category = normalizeToken(filter.Category)

	phrases, total, err := s.store.ListPhrases(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	if phrases == nil {
		phrases = []Phrase{}
	}
	return &PhrasePage{
		Phrases:  phrases,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListCategories returns the distinct category tokens of a language set.
func (s *Service) ListCategories(ctx context.Context, setID int64) ([]string, error) {
	if _, err := s.languageSet(ctx, setID); err != nil {
		return nil, err
	}
	cats, err := s.store.ListCategories(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListImports returns the most recent imports into a language set.
func (s *Service) ListImports(ctx context.Context, setID int64, limit int) ([]ImportRecord, error) {
	if _, err := s.languageSet(ctx, setID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultImportList
	} else if limit > maxImportList {
		limit = maxImportList
	}
	recs, err := s.store.ListImports(ctx, setID, limit)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return recs, nil
}

func (s *Service) languageSet(ctx context.Context, id int64) (*LanguageSet, error) {
	set, err := s.store.GetLanguageSet(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrLanguageSetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get language set %d: %w", id, err)
	}
	return set, nil
}
