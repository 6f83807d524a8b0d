package core_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/config"
	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/core/coretest"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const setID int64 = 1

func testConfig() *config.Config {
	return &config.Config{
		Import: config.ImportConfig{
			MaxContentSize: 1 << 20,
			MaxConcurrent:  2,
			MaxWaitTime:    time.Second,
			ChunkSize:      2,
			Timeout:        time.Minute,
		},
	}
}

func newTestService(t *testing.T, cfg *config.Config) (*core.Service, *coretest.MemoryStore) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	store := coretest.NewMemoryStore(core.LanguageSet{
		ID: setID, Name: "hr", DisplayName: "Croatian", IsActive: true, IsDefault: true,
	})
	return core.NewService(store, cfg), store
}

const sampleList = "categories;phrase;translation\n" +
	"Animals  Animals Pets;dog;pas\n" +
	"Animals;cat;mačka\n" +
	"Food;;kruh\n" +
	"Animals;dog;pas\n" +
	"Food;fish;riba\n"

func reasons(errs []core.ImportError) map[int]string {
	out := make(map[int]string, len(errs))
	for _, e := range errs {
		out[e.Line] = e.Reason
	}
	return out
}

// ---------------------------------------------------------------------------
// Preview
// ---------------------------------------------------------------------------

func TestService_Preview_Success(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	resp, err := svc.Preview(context.Background(), setID, sampleList, "")

	require.NoError(t, err)
	assert.Equal(t, "hr", resp.LanguageSet.Name)
	assert.True(t, resp.Preview.HasHeader)
	assert.Len(t, resp.Preview.Rows, 5)
	assert.True(t, resp.Preview.InvalidRow)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ROW001", resp.Error.Code)
}

func TestService_Preview_SeparatorErrorIsData(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	resp, err := svc.Preview(context.Background(), setID, "A;hello;hi", ",")

	require.NoError(t, err)
	assert.Empty(t, resp.Preview.Rows)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SEP002", resp.Error.Code)
}

func TestService_Preview_Clean(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	resp, err := svc.Preview(context.Background(), setID, "Animals|dog|pas", "pipe")

	require.NoError(t, err)
	assert.Nil(t, resp.Error)
	assert.Equal(t, phrase.Pipe, resp.Preview.Separator)
}

func TestService_Preview_Errors(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Preview(ctx, 99, "A;b;c", "")
	require.ErrorIs(t, err, core.ErrLanguageSetNotFound)

	_, err = svc.Preview(ctx, setID, "A;b;c", ":")
	require.ErrorIs(t, err, phrase.ErrUnknownSeparator)
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

func TestService_Import_Success(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)
	ctx := core.ContextWithClient(context.Background(), "10.0.0.7", "phrasectl/test")

	res, err := svc.Import(ctx, setID, phrase.Payload{Content: sampleList, Separator: ";"})

	require.NoError(t, err)
	assert.Equal(t, ";", res.Separator)
	assert.True(t, res.HasHeader)
	assert.Equal(t, 5, res.TotalRows)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 2, res.Skipped)

	r := reasons(res.Errors)
	assert.Equal(t, core.ReasonInvalidRow, r[4])
	assert.Contains(t, r[5], core.ReasonDuplicate)
	assert.Contains(t, r[5], "line 2")

	// Three rows in chunks of two.
	assert.Equal(t, 2, store.InsertCalls)

	stored := store.Phrases()
	require.Len(t, stored, 3)
	assert.Equal(t, "Animals Pets", stored[0].Categories)
	assert.Equal(t, "mačka", stored[1].Translation)

	imports := store.Imports()
	require.Len(t, imports, 1)
	assert.Equal(t, res.ImportID, imports[0].ID)
	assert.Equal(t, 3, imports[0].Inserted)
	assert.Equal(t, "10.0.0.7", imports[0].IPAddress)
	assert.Equal(t, "phrasectl/test", imports[0].UserAgent)
}

func TestService_Import_ExistingRowsSkipped(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)
	ctx := context.Background()
	payload := phrase.Payload{Content: sampleList, Separator: ";"}

	_, err := svc.Import(ctx, setID, payload)
	require.NoError(t, err)

	res, err := svc.Import(ctx, setID, payload)
	require.NoError(t, err)

	assert.Zero(t, res.Inserted)
	assert.Equal(t, 5, res.Skipped)
	r := reasons(res.Errors)
	for _, line := range []int{2, 3, 6} {
		assert.Equal(t, core.ReasonExists, r[line], "line %d", line)
	}
	assert.Len(t, store.Phrases(), 3)
	assert.Len(t, store.Imports(), 2)
}

func TestService_Import_OmittedSeparatorAutoDetects(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	res, err := svc.Import(context.Background(), setID, phrase.Payload{Content: "Animals\tdog\tpas\nFood\tfish\triba"})

	require.NoError(t, err)
	assert.Equal(t, "tab", res.Separator)
	assert.Equal(t, 2, res.Inserted)
}

func TestService_Import_Rejected(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Import.MaxContentSize = 64

	tests := []struct {
		name    string
		setID   int64
		payload phrase.Payload
		want    error
	}{
		{"empty", setID, phrase.Payload{Content: " \n "}, phrase.ErrEmptyContent},
		{"byte-order mark only", setID, phrase.Payload{Content: "\ufeff \n"}, phrase.ErrEmptyContent},
		{"too large", setID, phrase.Payload{Content: strings.Repeat("a;b;c\n", 20)}, core.ErrContentTooLarge},
		{"unknown separator", setID, phrase.Payload{Content: "a;b;c", Separator: "colon"}, phrase.ErrUnknownSeparator},
		{"unknown set", 42, phrase.Payload{Content: "a;b;c"}, core.ErrLanguageSetNotFound},
		{"no separator", setID, phrase.Payload{Content: "onlyone\nanotherone"}, phrase.ErrNoSeparatorDetected},
		{"mismatch", setID, phrase.Payload{Content: "A;hello;hi", Separator: ","}, phrase.ErrSeparatorMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t, cfg)
			res, err := svc.Import(context.Background(), tt.setID, tt.payload)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
			assert.Empty(t, store.Imports())
			assert.Zero(t, store.InsertCalls)
		})
	}
}

func TestService_Import_ChunkFailure(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)
	store.FailInsert = func(rows []core.NewPhrase) error {
		for _, r := range rows {
			if r.Phrase == "cat" {
				return errors.New("connection reset by peer")
			}
		}
		return nil
	}

	res, err := svc.Import(context.Background(), setID, phrase.Payload{Content: sampleList})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 4, res.Skipped)
	r := reasons(res.Errors)
	assert.True(t, strings.HasPrefix(r[2], "chunk transaction failed: "))
	assert.True(t, strings.HasPrefix(r[3], "chunk transaction failed: "))
	require.Len(t, store.Phrases(), 1)
	assert.Equal(t, "fish", store.Phrases()[0].Phrase)
}

func TestService_Import_CancelledMidway(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.FailInsert = func([]core.NewPhrase) error {
		cancel()
		return nil
	}

	res, err := svc.Import(ctx, setID, phrase.Payload{Content: sampleList})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, store.InsertCalls)
	assert.Contains(t, reasons(res.Errors)[6], context.Canceled.Error())
	// History is written even though the request context is gone.
	assert.Len(t, store.Imports(), 1)
}

func TestService_Import_LimiterBusy(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Import.MaxConcurrent = 1
	cfg.Import.MaxWaitTime = 20 * time.Millisecond
	svc, _ := newTestService(t, cfg)

	require.True(t, svc.Limiter().TryAcquire())
	defer svc.Limiter().Release()

	_, err := svc.Import(context.Background(), setID, phrase.Payload{Content: "a;b;c"})
	require.ErrorIs(t, err, core.ErrTooManyImports)
}

func TestService_ImportReader(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)

	file := append([]byte{0xEF, 0xBB, 0xBF}, []byte("category\tphrase\ttranslation\r\nFood\tbread\tkruh\r\n")...)
	res, err := svc.ImportReader(context.Background(), setID, bytes.NewReader(file), "tab")

	require.NoError(t, err)
	assert.True(t, res.HasHeader)
	assert.Equal(t, 1, res.Inserted)
	require.Len(t, store.Phrases(), 1)
	assert.Equal(t, "kruh", store.Phrases()[0].Translation)
}

// ---------------------------------------------------------------------------
// Read paths
// ---------------------------------------------------------------------------

func TestService_ListPhrases(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	_, err := svc.Import(ctx, setID, phrase.Payload{Content: sampleList})
	require.NoError(t, err)

	page, err := svc.ListPhrases(ctx, core.PhraseFilter{LanguageSetID: setID, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Phrases, 2)

	page, err = svc.ListPhrases(ctx, core.PhraseFilter{LanguageSetID: setID, Category: " Pets "})
	require.NoError(t, err)
	require.Len(t, page.Phrases, 1)
	assert.Equal(t, "dog", page.Phrases[0].Phrase)
	assert.Equal(t, 50, page.PageSize)

	page, err = svc.ListPhrases(ctx, core.PhraseFilter{LanguageSetID: setID, Search: "RIB", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Phrases, 1)
	assert.Equal(t, "fish", page.Phrases[0].Phrase)

	page, err = svc.ListPhrases(ctx, core.PhraseFilter{LanguageSetID: setID, Page: 9})
	require.NoError(t, err)
	assert.NotNil(t, page.Phrases)
	assert.Empty(t, page.Phrases)

	_, err = svc.ListPhrases(ctx, core.PhraseFilter{LanguageSetID: 7})
	require.ErrorIs(t, err, core.ErrLanguageSetNotFound)
}

func TestService_ListCategoriesAndImports(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Import(ctx, setID, phrase.Payload{Content: "Animals;dog;pas"})
	require.NoError(t, err)
	second, err := svc.Import(ctx, setID, phrase.Payload{Content: "Food Drinks;tea;čaj"})
	require.NoError(t, err)

	cats, err := svc.ListCategories(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Animals", "Drinks", "Food"}, cats)

	recs, err := svc.ListImports(ctx, setID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.ImportID, recs[0].ID)
	assert.Equal(t, first.ImportID, recs[1].ID)

	recs, err = svc.ListImports(ctx, setID, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestService_ListLanguageSets(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	sets, err := svc.ListLanguageSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Croatian", sets[0].DisplayName)
}
