package phrase

import (
	"errors"
	"fmt"
)

// PreviewRowLimit is the maximum number of data rows a preview parses.
const PreviewRowLimit = 5

// ErrInvalidRow is the aggregate verdict reported when at least one previewed
// row has fewer than three non-empty leading fields.
var ErrInvalidRow = errors.New("invalid row detected")

// Preview is the bounded parse used for inline feedback.
type Preview struct {
	Separator Separator `json:"separator,omitempty"`
	HasHeader bool      `json:"hasHeader"`
	Rows      []Row     `json:"rows"`
	// DataLines is the number of data lines in the whole input, not only
	// the previewed ones.
	DataLines  int   `json:"dataLines"`
	InvalidRow bool  `json:"invalidRow"`
	Err        error `json:"-"`
}

// Truncated reports whether the input has more data lines than were previewed.
func (p Preview) Truncated() bool {
	return p.DataLines > len(p.Rows)
}

// Result is the definitive parse of every data line.
type Result struct {
	Separator   Separator
	HasHeader   bool
	Rows        []Row
	InvalidRows int
	Err         error
}

// Valid returns the rows that passed validation, in input order.
func (r Result) Valid() []Row {
	out := make([]Row, 0, len(r.Rows)-r.InvalidRows)
	for _, row := range r.Rows {
		if row.Valid {
			out = append(out, row)
		}
	}
	return out
}

// PreviewText parses at most PreviewRowLimit data lines of raw.
//
// Blank input yields an empty preview with no error. Detection and mismatch
// failures yield an empty preview carrying the failure. Otherwise Err is
// ErrInvalidRow (wrapped with the first offending line) when any previewed
// row is invalid.
func PreviewText(raw string, mode Mode) Preview {
	sep, hasHeader, data, err := prepare(raw, mode)
	if err != nil {
		return Preview{Rows: []Row{}, Err: err}
	}

	p := Preview{
		Separator: sep,
		HasHeader: hasHeader,
		DataLines: len(data),
	}
	if len(data) > PreviewRowLimit {
		data = data[:PreviewRowLimit]
	}

	p.Rows = parseRows(data, sep)
	for _, row := range p.Rows {
		if !row.Valid {
			p.InvalidRow = true
			p.Err = fmt.Errorf("%w on line %d", ErrInvalidRow, row.Line)
			break
		}
	}
	return p
}

// Parse runs the preview pipeline over every data line of raw.
//
// Invalid rows are kept and counted; only separator failures set Err.
func Parse(raw string, mode Mode) Result {
	sep, hasHeader, data, err := prepare(raw, mode)
	if err != nil {
		return Result{Err: err}
	}

	res := Result{
		Separator: sep,
		HasHeader: hasHeader,
		Rows:      parseRows(data, sep),
	}
	for _, row := range res.Rows {
		if !row.Valid {
			res.InvalidRows++
		}
	}
	return res
}

// prepare runs the shared front half of the pipeline: line splitting, BOM
// removal from the first non-blank line, separator resolution, the
// explicit-mode first-line check and header removal. It returns the remaining
// data lines.
func prepare(raw string, mode Mode) (Separator, bool, []Line, error) {
	lines := dataLines(raw)
	if len(lines) == 0 {
		return 0, false, nil, nil
	}

	sep, err := Resolve(mode, texts(lines))
	if err != nil {
		return 0, false, nil, err
	}
	if mode != ModeAuto {
		if err := checkFirstLine(lines[0].Text, sep); err != nil {
			return 0, false, nil, err
		}
	}

	if IsHeader(lines[0].Text, sep) {
		return sep, true, lines[1:], nil
	}
	return sep, false, lines, nil
}

func parseRows(lines []Line, sep Separator) []Row {
	rows := make([]Row, len(lines))
	for i, l := range lines {
		rows[i] = ParseLine(l.Text, sep)
		rows[i].Line = l.Number
	}
	return rows
}
