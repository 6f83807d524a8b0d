package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
)

const (
	tableLanguageSets = "language_sets"
	tablePhrases      = "phrases"
	tableImports      = "phrase_imports"
)

var (
	languageSetColumns = []string{"id", "name", "display_name", "description", "author", "is_active", "is_default", "created_at"}
	phraseColumns      = []string{"id", "language_set_id", "categories", "phrase", "translation", "created_at"}
	importColumns      = []string{"id", "language_set_id", "separator", "total_rows", "inserted", "skipped", "ip_address", "user_agent", "created_at"}
)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo implements core.Store.
type Repo struct {
	pool *pgxpool.Pool
}

var _ core.Store = (*Repo)(nil)

// NewRepo returns a repository over pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Language sets
// ---------------------------------------------------------------------------

func (r *Repo) GetLanguageSet(ctx context.Context, id int64) (*core.LanguageSet, error) {
	query, args, err := psql.Select(languageSetColumns...).
		From(tableLanguageSets).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "language set", id)
	}
	set, err := pgx.CollectExactlyOneRow(rows, scanLanguageSet)
	if err != nil {
		return nil, mapError(err, "language set", id)
	}
	return &set, nil
}

func (r *Repo) ListLanguageSets(ctx context.Context) ([]core.LanguageSet, error) {
	query, args, err := psql.Select(languageSetColumns...).
		From(tableLanguageSets).
		OrderBy("is_default DESC", "display_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "language sets", nil)
	}
	return collect(rows, scanLanguageSet, "language sets")
}

// ---------------------------------------------------------------------------
// Phrases
// ---------------------------------------------------------------------------

func (r *Repo) ListPhrases(ctx context.Context, f core.PhraseFilter) ([]core.Phrase, int, error) {
	where := squirrel.And{squirrel.Eq{"language_set_id": f.LanguageSetID}}
	if f.Category != "" {
		where = append(where, squirrel.Expr("? = ANY(string_to_array(categories, ' '))", f.Category))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"phrase": pattern},
			squirrel.ILike{"translation": pattern},
		})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From(tablePhrases).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "phrases", f.LanguageSetID)
	}

	query, args, err := psql.Select(phraseColumns...).
		From(tablePhrases).
		Where(where).
		OrderBy("id ASC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "phrases", f.LanguageSetID)
	}
	phrases, err := collect(rows, scanPhrase, "phrases")
	if err != nil {
		return nil, 0, err
	}
	return phrases, total, nil
}

func (r *Repo) ListCategories(ctx context.Context, setID int64) ([]string, error) {
	query, args, err := psql.Select("DISTINCT unnest(string_to_array(categories, ' ')) AS category").
		From(tablePhrases).
		Where(squirrel.Eq{"language_set_id": setID}).
		OrderBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "categories", setID)
	}
	return collect(rows, pgx.RowTo[string], "categories")
}

// InsertPhrases writes rows in one transaction and returns the lines of the
// rows that were new. Existing (language set, phrase, translation) triples
// are skipped by ON CONFLICT DO NOTHING.
func (r *Repo) InsertPhrases(ctx context.Context, setID int64, rows []core.NewPhrase) ([]int, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	insert := psql.Insert(tablePhrases).
		Columns("language_set_id", "categories", "phrase", "translation").
		Suffix("ON CONFLICT (language_set_id, phrase, translation) DO NOTHING RETURNING phrase, translation")
	lines := make(map[string]int, len(rows))
	for _, row := range rows {
		insert = insert.Values(setID, row.Categories, row.Phrase, row.Translation)
		lines[phraseKey(row.Phrase, row.Translation)] = row.Line
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var inserted []int
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		keys, err := pgx.CollectRows(result, func(row pgx.CollectableRow) (string, error) {
			var p, t string
			err := row.Scan(&p, &t)
			return phraseKey(p, t), err
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			inserted = append(inserted, lines[k])
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err, "insert phrases into set", setID)
	}
	return inserted, nil
}

// ---------------------------------------------------------------------------
// Import history
// ---------------------------------------------------------------------------

func (r *Repo) RecordImport(ctx context.Context, rec core.ImportRecord) error {
	query, args, err := psql.Insert(tableImports).
		Columns(importColumns...).
		Values(rec.ID, rec.LanguageSetID, rec.Separator, rec.TotalRows, rec.Inserted,
			rec.Skipped, rec.IPAddress, rec.UserAgent, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapError(err, "import", rec.ID)
	}
	return nil
}

func (r *Repo) ListImports(ctx context.Context, setID int64, limit int) ([]core.ImportRecord, error) {
	query, args, err := psql.Select(importColumns...).
		From(tableImports).
		Where(squirrel.Eq{"language_set_id": setID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "imports", setID)
	}
	return collect(rows, scanImport, "imports")
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func collect[T any](rows pgx.Rows, fn pgx.RowToFunc[T], entity string) ([]T, error) {
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, mapError(err, entity, nil)
	}
	return out, nil
}

func scanLanguageSet(row pgx.CollectableRow) (core.LanguageSet, error) {
	var s core.LanguageSet
	err := row.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Description, &s.Author,
		&s.IsActive, &s.IsDefault, &s.CreatedAt)
	return s, err
}

func scanPhrase(row pgx.CollectableRow) (core.Phrase, error) {
	var p core.Phrase
	err := row.Scan(&p.ID, &p.LanguageSetID, &p.Categories, &p.Phrase, &p.Translation, &p.CreatedAt)
	return p, err
}

func scanImport(row pgx.CollectableRow) (core.ImportRecord, error) {
	var rec core.ImportRecord
	err := row.Scan(&rec.ID, &rec.LanguageSetID, &rec.Separator, &rec.TotalRows, &rec.Inserted,
		&rec.Skipped, &rec.IPAddress, &rec.UserAgent, &rec.CreatedAt)
	return rec, err
}

func phraseKey(phrase, translation string) string {
	return phrase + "\x00" + translation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
