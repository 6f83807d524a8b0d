package core

import (
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
	"github.com/google/uuid"
)

// LanguageSet groups phrases of one language pair.
type LanguageSet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

// Phrase is a stored phrase entry.
type Phrase struct {
	ID            int64     `json:"id"`
	LanguageSetID int64     `json:"language_set_id"`
	Categories    string    `json:"categories"`
	Phrase        string    `json:"phrase"`
	Translation   string    `json:"translation"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewPhrase is a phrase about to be inserted.
type NewPhrase struct {
	Line        int
	Categories  string
	Phrase      string
	Translation string
}

// PhraseFilter selects a page of phrases.
type PhraseFilter struct {
	LanguageSetID int64
	Category      string // exact category token
	Search        string // substring of phrase or translation
	Page          int    // 1-based
	PageSize      int
}

// PhrasePage is one page of ListPhrases.
type PhrasePage struct {
	Phrases  []Phrase `json:"phrases"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// ImportRecord is the history entry written after each import.
type ImportRecord struct {
	ID            uuid.UUID `json:"id"`
	LanguageSetID int64     `json:"language_set_id"`
	Separator     string    `json:"separator"`
	TotalRows     int       `json:"total_rows"`
	Inserted      int       `json:"inserted"`
	Skipped       int       `json:"skipped"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ImportError describes one line that was not imported.
type ImportError struct {
	Line   int    `json:"line"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason"`
}

// Skip reasons reported in ImportError.
const (
	ReasonInvalidRow  = "invalid row: categories, phrase and translation are required"
	ReasonDuplicate   = "duplicate within import"
	ReasonExists      = "phrase already exists"
	reasonChunkFailed = "chunk transaction failed: "
)

// ImportResult summarises a finished import.
type ImportResult struct {
	ImportID  uuid.UUID     `json:"import_id"`
	Separator string        `json:"separator"`
	HasHeader bool          `json:"has_header"`
	TotalRows int           `json:"total_rows"`
	Inserted  int           `json:"inserted"`
	Skipped   int           `json:"skipped"`
	Errors    []ImportError `json:"errors,omitempty"`
	Duration  time.Duration `json:"-"`
}

// PreviewResponse is the service view of a phrase preview.
type PreviewResponse struct {
	LanguageSet *LanguageSet   `json:"language_set"`
	Preview     phrase.Preview `json:"preview"`
	// Error is set when the preview carries an error.
	Error *UserMessage `json:"error,omitempty"`
}
