package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/logging"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
	"github.com/google/uuid"
)

const recordImportTimeout = 5 * time.Second

// Import parses payload and writes its valid rows into a language set.
//
// The payload separator label selects the mode; an omitted label falls back
// to auto-detection. Separator failures abort the import. Invalid rows and
// rows repeated within the payload are skipped and reported, as are rows
// already stored. Rows are written in chunks of ImportConfig.ChunkSize, one
// transaction per chunk; a failed chunk is reported line by line and the
// import carries on with the next one.
func (s *Service) Import(ctx context.Context, setID int64, payload phrase.Payload) (*ImportResult, error) {
	if phrase.IsBlank(payload.Content) {
		return nil, phrase.ErrEmptyContent
	}
	if int64(len(payload.Content)) > s.cfg.MaxContentSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrContentTooLarge, s.cfg.MaxContentSize)
	}
	mode, err := payload.Mode()
	if err != nil {
		return nil, err
	}
	if _, err := s.languageSet(ctx, setID); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := s.now()
	importID := uuid.New()
	log := logging.WithFields(ctx, "import_id", importID, "language_set_id", setID, "mode", mode)

	parsed := phrase.Parse(payload.Content, mode)
	if parsed.Err != nil {
		log.Info("import rejected", "error", parsed.Err)
		return nil, parsed.Err
	}

	result := &ImportResult{
		ImportID:  importID,
		Separator: parsed.Separator.Label(),
		HasHeader: parsed.HasHeader,
		TotalRows: len(parsed.Rows),
	}
	log.Info("import started", "separator", result.Separator, "rows", result.TotalRows)

	pending := collectRows(parsed, result)
	s.insertChunks(ctx, setID, pending, result)

	result.Duration = s.now().Sub(start)
	s.recordImport(ctx, setID, result)

	log.Info("import finished",
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// ImportReader imports an uploaded file. The reader is size-limited, stripped
// of a BOM and sanitised to valid UTF-8 before parsing.
func (s *Service) ImportReader(ctx context.Context, setID int64, r io.Reader, separator string) (*ImportResult, error) {
	content, err := ReadContent(r, s.cfg.MaxContentSize)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, setID, phrase.Payload{Content: content, Separator: separator})
}

// collectRows keeps the valid, first-seen rows of parsed and records every
// other row in result.
func collectRows(parsed phrase.Result, result *ImportResult) []NewPhrase {
	sep := string(rune(parsed.Separator))
	seen := make(map[string]int, len(parsed.Rows))
	rows := make([]NewPhrase, 0, len(parsed.Rows))

	for _, row := range parsed.Rows {
		if !row.Valid {
			result.skip(row.Line, strings.Join(row.Fields, sep), ReasonInvalidRow)
			continue
		}

		key := row.Phrase + "\x00" + row.Translation
		if first, dup := seen[key]; dup {
			result.skip(row.Line, strings.Join(row.Fields, sep),
				fmt.Sprintf("%s (first seen on line %d)", ReasonDuplicate, first))
			continue
		}
		seen[key] = row.Line

		rows = append(rows, NewPhrase{
			Line:        row.Line,
			Categories:  normalizeCategories(row.Categories),
			Phrase:      row.Phrase,
			Translation: row.Translation,
		})
	}
	return rows
}

func (s *Service) insertChunks(ctx context.Context, setID int64, rows []NewPhrase, result *ImportResult) {
	size := s.cfg.ChunkSize
	if size <= 0 {
		size = len(rows)
	}

	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunk := rows[start:end]

		if ctx.Err() != nil {
			result.failRows(rows[start:], ctx.Err())
			return
		}

		inserted, err := s.store.InsertPhrases(ctx, setID, chunk)
		if err != nil {
			logging.FromContext(ctx).Warn("import chunk failed",
				"first_line", chunk[0].Line, "rows", len(chunk), "error", err)
			result.failRows(chunk, err)
			continue
		}

		done := make(map[int]bool, len(inserted))
		for _, line := range inserted {
			done[line] = true
		}
		for _, r := range chunk {
			if done[r.Line] {
				result.Inserted++
				continue
			}
			result.skip(r.Line, "", ReasonExists)
		}
	}
}

// recordImport writes the history entry. It survives cancellation of the
// request so aborted imports are still recorded.
func (s *Service) recordImport(ctx context.Context, setID int64, result *ImportResult) {
	ip, ua := ClientFromContext(ctx)
	rec := ImportRecord{
		ID:            result.ImportID,
		LanguageSetID: setID,
		Separator:     result.Separator,
		TotalRows:     result.TotalRows,
		Inserted:      result.Inserted,
		Skipped:       result.Skipped,
		IPAddress:     ip,
		UserAgent:     ua,
		CreatedAt:     s.now().UTC(),
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordImportTimeout)
	defer cancel()
	if err := s.store.RecordImport(recCtx, rec); err != nil {
		logging.FromContext(ctx).Error("record import history", "import_id", rec.ID, "error", err)
	}
}

func (r *ImportResult) skip(line int, text, reason string) {
	r.Skipped++
	r.Errors = append(r.Errors, ImportError{Line: line, Text: text, Reason: reason})
}

func (r *ImportResult) failRows(rows []NewPhrase, err error) {
	for _, row := range rows {
		r.skip(row.Line, row.Phrase, reasonChunkFailed+err.Error())
	}
}

// normalizeCategories collapses whitespace and drops repeated tokens while
// keeping their first-seen order.
func normalizeCategories(s string) string {
	fields := strings.Fields(s)
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func normalizeToken(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
