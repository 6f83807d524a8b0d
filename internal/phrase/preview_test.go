package phrase

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenLines() string {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "Animals;word%d;rijec%d\n", i, i)
	}
	return b.String()
}

func TestPreviewText_Empty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "\n\r\n \t\n", "\ufeff", "\ufeff \n\t\n", "\n\ufeff\n"} {
		p := PreviewText(raw, ModeAuto)
		assert.NoError(t, p.Err)
		assert.NotNil(t, p.Rows)
		assert.Empty(t, p.Rows)
		assert.Zero(t, p.DataLines)
	}
}

func TestPreview_JSONRowsAlwaysArray(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "plain text"} {
		data, err := json.Marshal(PreviewText(raw, ModeAuto))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"rows":[]`)
	}
}

func TestPreviewText_HeaderStripped(t *testing.T) {
	t.Parallel()

	p := PreviewText("categories;phrase;translation\nA;hello;hi", ModeSemicolon)

	require.NoError(t, p.Err)
	assert.True(t, p.HasHeader)
	assert.Equal(t, Semicolon, p.Separator)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, [3]string{"A", "hello", "hi"}, p.Rows[0].Columns())
	assert.Equal(t, 2, p.Rows[0].Line)
	assert.Equal(t, 1, p.DataLines)
}

func TestPreviewText_HeaderNotCountedAgainstCap(t *testing.T) {
	t.Parallel()

	raw := "category;phrase;translation\n" + tenLines()
	p := PreviewText(raw, ModeAuto)

	require.NoError(t, p.Err)
	require.Len(t, p.Rows, PreviewRowLimit)
	assert.Equal(t, "word1", p.Rows[0].Phrase)
	assert.Equal(t, "word5", p.Rows[4].Phrase)
}

func TestPreviewText_ExplicitMismatch(t *testing.T) {
	t.Parallel()

	p := PreviewText("A;hello;hi", ModeComma)

	require.ErrorIs(t, p.Err, ErrSeparatorMismatch)
	assert.Empty(t, p.Rows)
	assert.True(t, p.Separator.IsZero())
}

func TestPreviewText_MismatchOnlyChecksFirstLine(t *testing.T) {
	t.Parallel()

	p := PreviewText("A,hello,hi\nB;bye;doviđenja", ModeComma)

	require.ErrorIs(t, p.Err, ErrInvalidRow)
	require.Len(t, p.Rows, 2)
	assert.True(t, p.Rows[0].Valid)
	assert.False(t, p.Rows[1].Valid)
}

func TestPreviewText_AutoDetectFailure(t *testing.T) {
	t.Parallel()

	p := PreviewText("onlyone\nanotherone", ModeAuto)

	require.ErrorIs(t, p.Err, ErrNoSeparatorDetected)
	assert.Empty(t, p.Rows)
}

func TestPreviewText_InvalidRow(t *testing.T) {
	t.Parallel()

	p := PreviewText("A;;hi", ModeSemicolon)

	require.ErrorIs(t, p.Err, ErrInvalidRow)
	assert.True(t, p.InvalidRow)
	require.Len(t, p.Rows, 1)
	assert.False(t, p.Rows[0].Valid)
	assert.Contains(t, p.Err.Error(), "line 1")
}

func TestPreviewText_InvalidRowBeyondCapIgnored(t *testing.T) {
	t.Parallel()

	raw := tenLines() + "A;;hi\n"
	p := PreviewText(raw, ModeSemicolon)

	require.NoError(t, p.Err)
	assert.False(t, p.InvalidRow)
	assert.Equal(t, 11, p.DataLines)
	assert.True(t, p.Truncated())
}

func TestPreviewText_Cap(t *testing.T) {
	t.Parallel()

	raw := tenLines()

	p := PreviewText(raw, ModeAuto)
	require.NoError(t, p.Err)
	assert.Len(t, p.Rows, 5)
	assert.Equal(t, 10, p.DataLines)

	res := Parse(raw, ModeAuto)
	require.NoError(t, res.Err)
	assert.Len(t, res.Rows, 10)
	assert.Zero(t, res.InvalidRows)
}

func TestPreviewText_BOM(t *testing.T) {
	t.Parallel()

	p := PreviewText("\ufeffcategories;phrase;translation\nA;hi;hello", ModeSemicolon)

	require.NoError(t, p.Err)
	assert.True(t, p.HasHeader)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, [3]string{"A", "hi", "hello"}, p.Rows[0].Columns())
}

func TestPreviewText_BOMAfterBlankLines(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"\n\ufeffcategories;phrase;translation\nA;hi;hello",
		"  \r\n\n\ufeffcategories;phrase;translation\r\nA;hi;hello",
		"\ufeff\ncategories;phrase;translation\nA;hi;hello",
	} {
		p := PreviewText(raw, ModeSemicolon)

		require.NoError(t, p.Err)
		assert.True(t, p.HasHeader, "raw %q", raw)
		require.Len(t, p.Rows, 1)
		assert.Equal(t, [3]string{"A", "hi", "hello"}, p.Rows[0].Columns())
		assert.Equal(t, 1, p.DataLines)

		res := Parse(raw, ModeAuto)
		require.NoError(t, res.Err)
		assert.True(t, res.HasHeader)
		assert.Len(t, res.Rows, 1)
	}
}

func TestPreviewText_TieBreak(t *testing.T) {
	t.Parallel()

	p := PreviewText("a;b,c;d,e", ModeAuto)

	require.NoError(t, p.Err)
	assert.Equal(t, Semicolon, p.Separator)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, [3]string{"a", "b,c", "d,e"}, p.Rows[0].Columns())
}

func TestPreviewText_Deterministic(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		raw  string
		mode Mode
	}{
		{"categories;phrase;translation\nA;hello;hi", ModeSemicolon},
		{"A;hello;hi", ModeComma},
		{"onlyone\nanotherone", ModeAuto},
		{"A;;hi", ModeSemicolon},
		{tenLines(), ModeAuto},
	}
	for _, in := range inputs {
		assert.Equal(t, PreviewText(in.raw, in.mode), PreviewText(in.raw, in.mode))
		assert.Equal(t, Parse(in.raw, in.mode), Parse(in.raw, in.mode))
	}
}

func TestParse_CountsInvalidRows(t *testing.T) {
	t.Parallel()

	raw := "Animals;dog;pas\nA;;hi\nFood;fish\nFood;bread;kruh"
	res := Parse(raw, ModeAuto)

	require.NoError(t, res.Err)
	assert.Len(t, res.Rows, 4)
	assert.Equal(t, 2, res.InvalidRows)

	valid := res.Valid()
	require.Len(t, valid, 2)
	assert.Equal(t, 1, valid[0].Line)
	assert.Equal(t, 4, valid[1].Line)
}

func TestParse_SeparatorFailures(t *testing.T) {
	t.Parallel()

	res := Parse("A;hello;hi", ModeComma)
	require.ErrorIs(t, res.Err, ErrSeparatorMismatch)
	assert.Empty(t, res.Rows)

	res = Parse("onlyone\nanotherone", ModeAuto)
	require.ErrorIs(t, res.Err, ErrNoSeparatorDetected)
	assert.Empty(t, res.Rows)
}
